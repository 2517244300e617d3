// Package adapter executes one primitive operation against one backend and returns a structured payload.
// Failures are scoped to the single call: they are recorded in the payload and never escape as panics.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"querybridge/internal/model"
)

var (
	ErrTargetRequired = errors.New("target required")
	ErrTargetNotFound = errors.New("target not found")
)

// Adapter is the capability set shared by the relational and document backends.
type Adapter interface {
	// Backend returns the identity of the backend this adapter fronts.
	Backend() model.Backend
	// Capability describes the operations and features this adapter offers.
	Capability() Capability
	// Execute runs op, optionally scoped to target. The payload is never nil;
	// a non-nil error means the payload records a failure.
	Execute(ctx context.Context, op model.Operation, target string) (*Payload, error)
}

// Capability is the static description of one adapter, served by the capability listing.
type Capability struct {
	Backend      model.Backend     `json:"backend"`
	Name         string            `json:"name"`
	Operations   []model.Operation `json:"operations"`
	Capabilities []string          `json:"capabilities"`
}

// Payload is the result of one adapter call.
type Payload struct {
	Backend   model.Backend
	Operation model.Operation
	Success   bool
	// Degraded marks placeholder data returned when live introspection failed.
	Degraded bool
	Message  string
	Data     map[string]any
}

// Map flattens the payload into the open key-value shape nested in envelopes.
func (p *Payload) Map() map[string]any {
	out := make(map[string]any, len(p.Data)+5)
	for k, v := range p.Data {
		out[k] = v
	}
	out["backend"] = p.Backend
	out["operation"] = p.Operation
	out["success"] = p.Success
	out["message"] = p.Message
	if p.Degraded {
		out["degraded"] = true
	}
	return out
}

// Err returns the recorded error message, if any.
func (p *Payload) Err() string {
	if s, ok := p.Data["error"].(string); ok {
		return s
	}
	return ""
}

func success(b model.Backend, op model.Operation, msg string, data map[string]any) *Payload {
	if data == nil {
		data = map[string]any{}
	}
	return &Payload{Backend: b, Operation: op, Success: true, Message: msg, Data: data}
}

// Failure builds a failed payload that records err under the "error" key.
func Failure(b model.Backend, op model.Operation, msg string, err error) *Payload {
	data := map[string]any{}
	if err != nil {
		data["error"] = err.Error()
	}
	return &Payload{Backend: b, Operation: op, Success: false, Message: msg, Data: data}
}

func degraded(b model.Backend, op model.Operation, msg string, data map[string]any, err error) *Payload {
	p := success(b, op, msg, data)
	p.Degraded = true
	p.Data["status"] = "unknown"
	p.Data["error"] = err.Error()
	return p
}

// Safe calls a.Execute and converts a panic into a failure payload.
func Safe(ctx context.Context, a Adapter, op model.Operation, target string) (p *Payload, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("adapter panic: %v", r)
			p = Failure(a.Backend(), op, fmt.Sprintf("%s adapter failed", a.Backend()), err)
		}
	}()
	p, err = a.Execute(ctx, op, target)
	if p == nil {
		if err == nil {
			err = errors.New("empty payload")
		}
		p = Failure(a.Backend(), op, fmt.Sprintf("%s adapter returned no payload", a.Backend()), err)
	}
	return p, err
}

// exportFilename is the generated name recorded in backup descriptors.
func exportFilename(target, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", target, now.UTC().Format("20060102_150405"), ext)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
