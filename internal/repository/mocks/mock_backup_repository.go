package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"querybridge/internal/model"
	"querybridge/internal/repository"
)

type MockBackupRepository struct {
	mock.Mock
}

func (m *MockBackupRepository) Create(ctx context.Context, b *model.Backup) (*model.Backup, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Backup), args.Error(1)
}

func (m *MockBackupRepository) FindByID(ctx context.Context, id string) (*model.Backup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Backup), args.Error(1)
}

func (m *MockBackupRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Backup], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Backup]), args.Error(1)
}

func (m *MockBackupRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
