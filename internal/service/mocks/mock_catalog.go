package mocks

import (
	"github.com/stretchr/testify/mock"

	"querybridge/internal/service"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Tools() service.ToolCatalog {
	args := m.Called()
	return args.Get(0).(service.ToolCatalog)
}

func (m *MockCatalog) Examples() map[string][]string {
	args := m.Called()
	return args.Get(0).(map[string][]string)
}
