package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"querybridge/internal/docstore"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Database() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStore) ListDatabases(ctx context.Context) ([]docstore.DatabaseInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]docstore.DatabaseInfo), args.Error(1)
}

func (m *MockStore) ListCollections(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) Stats(ctx context.Context) (docstore.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(docstore.Stats), args.Error(1)
}

func (m *MockStore) CountDocuments(ctx context.Context, collection string) (int64, error) {
	args := m.Called(ctx, collection)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) Sample(ctx context.Context, collection string, limit int64) ([]map[string]any, error) {
	args := m.Called(ctx, collection, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

func (m *MockStore) FieldTypes(ctx context.Context, collection string, sampleSize int64) (map[string][]string, error) {
	args := m.Called(ctx, collection, sampleSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]string), args.Error(1)
}
