package adapter_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"querybridge/internal/adapter"
	"querybridge/internal/adapter/mocks"
	"querybridge/internal/model"
)

func TestPayloadMap(t *testing.T) {
	p := &adapter.Payload{
		Backend:   model.BackendDocument,
		Operation: model.OpList,
		Success:   true,
		Message:   "document collections listed",
		Data:      map[string]any{"total_collections": 2},
	}

	m := p.Map()

	assert.Equal(t, model.BackendDocument, m["backend"])
	assert.Equal(t, model.OpList, m["operation"])
	assert.Equal(t, true, m["success"])
	assert.Equal(t, 2, m["total_collections"])
	assert.NotContains(t, m, "degraded")
}

func TestSafe_RecoversPanic(t *testing.T) {
	a := new(mocks.MockAdapter)
	a.On("Backend").Return(model.BackendRelational)
	a.On("Execute", mock.Anything, model.OpStatus, "").Run(func(mock.Arguments) {
		panic("nil pointer")
	})

	p, err := adapter.Safe(context.Background(), a, model.OpStatus, "")

	assert.Error(t, err)
	assert.False(t, p.Success)
	assert.Contains(t, p.Err(), "nil pointer")
}

func TestSafe_NilPayload(t *testing.T) {
	a := new(mocks.MockAdapter)
	a.On("Backend").Return(model.BackendDocument)
	a.On("Execute", mock.Anything, model.OpList, "").Return(nil, nil)

	p, err := adapter.Safe(context.Background(), a, model.OpList, "")

	assert.Error(t, err)
	assert.NotNil(t, p)
	assert.False(t, p.Success)
}
