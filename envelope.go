// Package optbridge transfers an optional int32 across a cgo boundary as a
// fixed-layout record and resolves it against a process-wide fallback.
package optbridge

import (
	"encoding/binary"
	"fmt"
)

// Layout of the C record `struct opt_i32 { int32_t value; uint8_t is_some; }`.
const (
	ValueOffset        = 0
	DiscriminantOffset = 4
	EnvelopeSize       = 8

	// minEnvelopeBytes is the record without its trailing padding.
	minEnvelopeBytes = DiscriminantOffset + 1
)

// discriminantSome is the only discriminant that means "present".
const discriminantSome uint8 = 1

// Envelope mirrors the C opt_i32 record field for field. It is a plain value:
// copy it, never hold a pointer into producer memory.
type Envelope struct {
	Value  int32
	IsSome uint8
}

// Encode packs an Option into an Envelope. An absent option always encodes
// with a zero payload.
func Encode(o Option) Envelope {
	if v, ok := o.Get(); ok {
		return Envelope{Value: v, IsSome: discriminantSome}
	}
	return Envelope{}
}

// Decode unpacks an Envelope. Any discriminant other than 1 decodes as absent.
func Decode(e Envelope) Option {
	if e.Present() {
		return Some(e.Value)
	}
	return None()
}

// Decode is shorthand for Decode(e).
func (e Envelope) Decode() Option {
	return Decode(e)
}

// Present reports whether the discriminant marks the payload as meaningful.
func (e Envelope) Present() bool {
	return e.IsSome == discriminantSome
}

func (e Envelope) String() string {
	return fmt.Sprintf("Envelope{value: %d, is_some: %d}", e.Value, e.IsSome)
}

// AppendBinary appends the in-memory image of the record, padding included,
// using the host byte order.
func (e Envelope) AppendBinary(b []byte) ([]byte, error) {
	b = binary.NativeEndian.AppendUint32(b, uint32(e.Value))
	b = append(b, e.IsSome)
	return append(b, make([]byte, EnvelopeSize-minEnvelopeBytes)...), nil
}

// MarshalBinary returns the EnvelopeSize-byte record image.
func (e Envelope) MarshalBinary() ([]byte, error) {
	return e.AppendBinary(make([]byte, 0, EnvelopeSize))
}

// UnmarshalBinary reads a record image. Trailing padding is optional and
// ignored; the discriminant byte is taken verbatim.
func (e *Envelope) UnmarshalBinary(data []byte) error {
	if len(data) < minEnvelopeBytes {
		return fmt.Errorf("%w: got %d bytes, need %d", ErrShortEnvelope, len(data), minEnvelopeBytes)
	}
	e.Value = int32(binary.NativeEndian.Uint32(data[ValueOffset:]))
	e.IsSome = data[DiscriminantOffset]
	return nil
}
