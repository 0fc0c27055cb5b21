//go:build cgo

package native

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analogrelay/optbridge"
)

func TestCheckLayout(t *testing.T) {
	require.NoError(t, CheckLayout())
	assert.Equal(t, GoLayout(), CLayout())
	assert.Equal(t, uintptr(optbridge.EnvelopeSize), CLayout().Size)
}

func TestProducerCrossesBoundary(t *testing.T) {
	cases := []optbridge.Envelope{
		{Value: math.MinInt32, IsSome: 1},
		{Value: -1, IsSome: 1},
		{Value: 0, IsSome: 1},
		{Value: 1, IsSome: 1},
		{Value: math.MaxInt32, IsSome: 1},
		{Value: 0, IsSome: 0},
		{Value: -5, IsSome: 3},
		{Value: 42, IsSome: 255},
	}

	for _, env := range cases {
		t.Run(env.String(), func(t *testing.T) {
			Set(env)
			got := Producer{}.Produce()
			assert.Equal(t, env, got)
		})
	}
}

func TestResolveNative(t *testing.T) {
	cases := []struct {
		desc     string
		env      optbridge.Envelope
		expected int32
	}{
		{
			desc:     "present value",
			env:      optbridge.Envelope{Value: 7, IsSome: 1},
			expected: 7,
		},
		{
			desc:     "absent uses fallback",
			env:      optbridge.Envelope{Value: 0, IsSome: 0},
			expected: 30,
		},
		{
			desc:     "malformed discriminant uses fallback",
			env:      optbridge.Envelope{Value: -5, IsSome: 3},
			expected: 30,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			Set(tc.env)
			r := optbridge.NewResolver(Producer{}, optbridge.WithFallback(optbridge.NewFallback(optbridge.DefaultReserveValue)))
			assert.Equal(t, tc.expected, r.Resolve())
		})
	}
}

func TestProducerNotCached(t *testing.T) {
	r := optbridge.NewResolver(Producer{}, optbridge.WithFallback(optbridge.NewFallback(30)))

	Set(optbridge.Envelope{Value: 1, IsSome: 1})
	assert.Equal(t, int32(1), r.Resolve())

	Set(optbridge.Envelope{Value: 2, IsSome: 1})
	assert.Equal(t, int32(2), r.Resolve())

	Set(optbridge.Envelope{})
	assert.Equal(t, int32(30), r.Resolve())
}
