package optbridge

import "strconv"

// Option is the decoded, Go-native form of an Envelope.
type Option struct {
	value int32
	valid bool
}

// Some constructs a present Option.
func Some(v int32) Option { return Option{value: v, valid: true} }

// None constructs an absent Option.
func None() Option { return Option{} }

// IsSome reports whether the option holds a value.
func (o Option) IsSome() bool { return o.valid }

// Get returns the value and whether it was present.
func (o Option) Get() (int32, bool) { return o.value, o.valid }

// Or returns the value if present, otherwise fallback.
func (o Option) Or(fallback int32) int32 {
	if o.valid {
		return o.value
	}
	return fallback
}

func (o Option) String() string {
	if !o.valid {
		return "None"
	}
	return "Some(" + strconv.FormatInt(int64(o.value), 10) + ")"
}
