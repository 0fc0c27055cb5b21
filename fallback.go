package optbridge

import "sync/atomic"

// DefaultReserveValue is the fallback every process starts with.
const DefaultReserveValue int32 = 30

// Fallback holds the value returned when a producer reports absence.
// It is safe for concurrent use; Get never observes a partially written value.
type Fallback struct {
	v atomic.Int32
}

// NewFallback returns a Fallback initialised to initial.
func NewFallback(initial int32) *Fallback {
	f := &Fallback{}
	f.v.Store(initial)
	return f
}

// Get returns the current fallback value.
func (f *Fallback) Get() int32 {
	return f.v.Load()
}

// Set replaces the fallback value for all subsequent Get calls.
func (f *Fallback) Set(v int32) {
	f.v.Store(v)
}

var processFallback = NewFallback(DefaultReserveValue)

// DefaultFallback returns the process-wide Fallback.
func DefaultFallback() *Fallback {
	return processFallback
}
