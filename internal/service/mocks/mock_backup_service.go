package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"querybridge/internal/model"
	"querybridge/internal/service"
	"querybridge/internal/storage"
)

type MockBackupService struct {
	mock.Mock
}

func (m *MockBackupService) Run(ctx context.Context) (*model.BackupManifest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BackupManifest), args.Error(1)
}

func (m *MockBackupService) List(ctx context.Context, limit, offset int) (*service.BackupListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BackupListResult), args.Error(1)
}

func (m *MockBackupService) Get(ctx context.Context, id string) (*service.BackupDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BackupDetail), args.Error(1)
}

func (m *MockBackupService) Manifest(ctx context.Context, id string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Get(1).(storage.ObjectInfo), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockBackupService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
