package optbridge_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analogrelay/optbridge"
)

var boundaryValues = []int32{math.MinInt32, -1, 0, 1, math.MaxInt32}

func TestEncodeDecodeSome(t *testing.T) {
	values := append([]int32{}, boundaryValues...)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		values = append(values, int32(rng.Uint32()))
	}

	for _, v := range values {
		env := optbridge.Encode(optbridge.Some(v))
		assert.Equal(t, optbridge.Envelope{Value: v, IsSome: 1}, env)
		assert.Equal(t, optbridge.Some(v), optbridge.Decode(env))
	}
}

func TestEncodeDecodeNone(t *testing.T) {
	env := optbridge.Encode(optbridge.None())
	assert.Equal(t, optbridge.Envelope{}, env, "absent envelope must carry a zero payload")
	assert.Equal(t, optbridge.None(), optbridge.Decode(env))
	assert.False(t, env.Present())
}

func TestDecodeNonOneDiscriminantIsAbsent(t *testing.T) {
	for d := 0; d <= math.MaxUint8; d++ {
		if d == 1 {
			continue
		}
		for _, v := range boundaryValues {
			env := optbridge.Envelope{Value: v, IsSome: uint8(d)}
			got := env.Decode()
			assert.False(t, got.IsSome(), "discriminant %d value %d decoded as present", d, v)
		}
	}
}

func TestOption(t *testing.T) {
	v, ok := optbridge.Some(-5).Get()
	assert.True(t, ok)
	assert.Equal(t, int32(-5), v)
	assert.Equal(t, int32(-5), optbridge.Some(-5).Or(30))
	assert.Equal(t, int32(30), optbridge.None().Or(30))
	assert.Equal(t, "Some(-5)", optbridge.Some(-5).String())
	assert.Equal(t, "None", optbridge.None().String())
}

func TestEnvelopeBinary(t *testing.T) {
	cases := []struct {
		desc string
		env  optbridge.Envelope
	}{
		{desc: "present", env: optbridge.Envelope{Value: 7, IsSome: 1}},
		{desc: "absent", env: optbridge.Envelope{}},
		{desc: "min present", env: optbridge.Envelope{Value: math.MinInt32, IsSome: 1}},
		{desc: "malformed discriminant", env: optbridge.Envelope{Value: -5, IsSome: 3}},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			data, err := tc.env.MarshalBinary()
			require.NoError(t, err)
			require.Len(t, data, optbridge.EnvelopeSize)
			assert.Equal(t, tc.env.IsSome, data[optbridge.DiscriminantOffset])
			assert.Equal(t, []byte{0, 0, 0}, data[optbridge.DiscriminantOffset+1:], "padding must be zero")

			var got optbridge.Envelope
			require.NoError(t, got.UnmarshalBinary(data))
			assert.Equal(t, tc.env, got)
		})
	}
}

func TestEnvelopeUnmarshalWithoutPadding(t *testing.T) {
	data, err := optbridge.Envelope{Value: 99, IsSome: 1}.MarshalBinary()
	require.NoError(t, err)

	var got optbridge.Envelope
	require.NoError(t, got.UnmarshalBinary(data[:5]))
	assert.Equal(t, optbridge.Some(99), got.Decode())
}

func TestEnvelopeUnmarshalShort(t *testing.T) {
	var env optbridge.Envelope
	err := env.UnmarshalBinary([]byte{1, 0, 0, 0})
	assert.ErrorIs(t, err, optbridge.ErrShortEnvelope)
}
