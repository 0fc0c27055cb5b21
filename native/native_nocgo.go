//go:build !cgo

package native

import "github.com/analogrelay/optbridge"

// Available reports whether the native producer is compiled in.
const Available = false

// Producer stands in for the C producer when cgo is disabled. It always
// reports absence.
type Producer struct{}

func (Producer) Produce() optbridge.Envelope { return optbridge.Envelope{} }

// Set is a no-op without cgo.
func Set(optbridge.Envelope) {}

// CLayout returns the zero Layout without cgo.
func CLayout() Layout { return Layout{} }

// CheckLayout always fails without cgo.
func CheckLayout() error { return ErrUnavailable }
