package adapter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"querybridge/internal/adapter"
	"querybridge/internal/adapter/mocks"
	"querybridge/internal/config"
	"querybridge/internal/model"
)

func TestWithBreaker_Disabled(t *testing.T) {
	next := new(mocks.MockAdapter)
	got := adapter.WithBreaker(next, config.BreakerConfig{Enabled: false}, nil)
	assert.Same(t, next, got)
}

func TestWithBreaker_TripsOnBackendFailures(t *testing.T) {
	next := new(mocks.MockAdapter)
	next.On("Backend").Return(model.BackendRelational)
	boom := errors.New("connection reset")
	next.On("Execute", mock.Anything, model.OpListTables, "").
		Return(adapter.Failure(model.BackendRelational, model.OpListTables, "listing relational tables failed", boom), boom)

	a := adapter.WithBreaker(next, config.BreakerConfig{Enabled: true, MinRequests: 2, FailureRatio: 0.5, OpenSec: 60}, nil)

	for i := 0; i < 2; i++ {
		_, err := a.Execute(context.Background(), model.OpListTables, "")
		assert.ErrorIs(t, err, boom)
	}

	p, err := a.Execute(context.Background(), model.OpListTables, "")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.False(t, p.Success)
	assert.Equal(t, "relational backend temporarily unavailable", p.Message)
	next.AssertNumberOfCalls(t, "Execute", 2)
}

func TestWithBreaker_CallerErrorsDoNotTrip(t *testing.T) {
	next := new(mocks.MockAdapter)
	next.On("Backend").Return(model.BackendDocument)
	next.On("Execute", mock.Anything, model.OpQuery, "").
		Return(adapter.Failure(model.BackendDocument, model.OpQuery, "document query requires a collection name", adapter.ErrTargetRequired), adapter.ErrTargetRequired)

	a := adapter.WithBreaker(next, config.BreakerConfig{Enabled: true, MinRequests: 1, FailureRatio: 0.1, OpenSec: 60}, nil)

	for i := 0; i < 5; i++ {
		_, err := a.Execute(context.Background(), model.OpQuery, "")
		assert.ErrorIs(t, err, adapter.ErrTargetRequired)
	}
	next.AssertNumberOfCalls(t, "Execute", 5)
}

func TestWithBreaker_OpenStatusStaysDegraded(t *testing.T) {
	next := new(mocks.MockAdapter)
	next.On("Backend").Return(model.BackendDocument)
	unreachable := &adapter.Payload{
		Backend:   model.BackendDocument,
		Operation: model.OpStatus,
		Success:   true,
		Degraded:  true,
		Message:   "document backend unreachable",
		Data:      map[string]any{"status": "unknown", "error": "server selection timeout"},
	}
	next.On("Execute", mock.Anything, model.OpStatus, "").Return(unreachable, nil)

	a := adapter.WithBreaker(next, config.BreakerConfig{Enabled: true, MinRequests: 5, FailureRatio: 0.8, OpenSec: 60}, nil)

	for i := 0; i < 7; i++ {
		p, err := a.Execute(context.Background(), model.OpStatus, "")
		assert.NoError(t, err, "call %d", i)
		assert.True(t, p.Success, "call %d", i)
		assert.True(t, p.Degraded, "call %d", i)
		assert.Equal(t, "unknown", p.Data["status"], "call %d", i)
		assert.NotEmpty(t, p.Err(), "call %d", i)
	}
	next.AssertNumberOfCalls(t, "Execute", 5)
}

func TestWithBreaker_OpenStatusAfterFailures(t *testing.T) {
	next := new(mocks.MockAdapter)
	next.On("Backend").Return(model.BackendRelational)
	boom := errors.New("connection reset")
	next.On("Execute", mock.Anything, model.OpListTables, "").
		Return(adapter.Failure(model.BackendRelational, model.OpListTables, "listing relational tables failed", boom), boom)

	a := adapter.WithBreaker(next, config.BreakerConfig{Enabled: true, MinRequests: 2, FailureRatio: 0.5, OpenSec: 60}, nil)
	for i := 0; i < 2; i++ {
		_, _ = a.Execute(context.Background(), model.OpListTables, "")
	}

	p, err := a.Execute(context.Background(), model.OpStatus, "")
	assert.NoError(t, err)
	assert.True(t, p.Success)
	assert.True(t, p.Degraded)
	assert.Equal(t, "relational backend temporarily unavailable", p.Message)
	assert.Contains(t, p.Err(), "circuit breaker is open")
	next.AssertNotCalled(t, "Execute", mock.Anything, model.OpStatus, "")
}
