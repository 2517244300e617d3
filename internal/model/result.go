package model

import (
	"sync/atomic"
	"time"
)

// QueryResult is the uniform envelope returned at every boundary.
// Data may be nil only when Success is false.
type QueryResult struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data"`
	Timestamp int64          `json:"timestamp"`
}

// NewSuccess builds a successful envelope stamped with the current time.
func NewSuccess(message string, data map[string]any) *QueryResult {
	return &QueryResult{Success: true, Message: message, Data: data, Timestamp: Now()}
}

// NewFailure builds a failed envelope. data is optional.
func NewFailure(message string, data map[string]any) *QueryResult {
	return &QueryResult{Success: false, Message: message, Data: data, Timestamp: Now()}
}

var lastStamp atomic.Int64

// Now returns Unix milliseconds that never go backwards within the process,
// even if the wall clock is stepped.
func Now() int64 {
	for {
		now := time.Now().UnixMilli()
		prev := lastStamp.Load()
		if now < prev {
			now = prev
		}
		if lastStamp.CompareAndSwap(prev, now) {
			return now
		}
	}
}
