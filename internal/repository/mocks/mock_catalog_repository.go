package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"querybridge/internal/model"
)

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) Tables(ctx context.Context) ([]model.TableStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TableStat), args.Error(1)
}

func (m *MockCatalogRepository) Dependencies(ctx context.Context) (map[string][]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]string), args.Error(1)
}
