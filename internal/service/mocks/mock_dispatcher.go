package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"querybridge/internal/adapter"
	"querybridge/internal/model"
)

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Route(ctx context.Context, analysis *model.QueryAnalysis) (*model.QueryResult, error) {
	args := m.Called(ctx, analysis)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QueryResult), args.Error(1)
}

func (m *MockDispatcher) Adapters() []adapter.Adapter {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]adapter.Adapter)
}
