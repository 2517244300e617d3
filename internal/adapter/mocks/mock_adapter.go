package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"querybridge/internal/adapter"
	"querybridge/internal/model"
)

type MockAdapter struct {
	mock.Mock
}

func (m *MockAdapter) Backend() model.Backend {
	args := m.Called()
	return args.Get(0).(model.Backend)
}

func (m *MockAdapter) Capability() adapter.Capability {
	args := m.Called()
	return args.Get(0).(adapter.Capability)
}

func (m *MockAdapter) Execute(ctx context.Context, op model.Operation, target string) (*adapter.Payload, error) {
	args := m.Called(ctx, op, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adapter.Payload), args.Error(1)
}
