package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"querybridge/internal/model"
)

type MockQueryService struct {
	mock.Mock
}

func (m *MockQueryService) Analyze(text string) model.QueryAnalysis {
	args := m.Called(text)
	return args.Get(0).(model.QueryAnalysis)
}

func (m *MockQueryService) Execute(ctx context.Context, text string) (*model.QueryResult, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QueryResult), args.Error(1)
}
