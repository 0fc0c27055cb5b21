package optbridge

import "errors"

var (
	// ErrShortEnvelope is returned when a record image is truncated.
	ErrShortEnvelope = errors.New("envelope: short buffer")

	// ErrUnknownProducer is returned when a producer name is not recognised.
	ErrUnknownProducer = errors.New("unknown producer")

	// ErrLayoutMismatch is returned when the Go and C views of the record differ.
	ErrLayoutMismatch = errors.New("envelope layout mismatch")
)
