package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"querybridge/internal/service"
)

type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Check(ctx context.Context) *service.HealthReport {
	args := m.Called(ctx)
	return args.Get(0).(*service.HealthReport)
}
