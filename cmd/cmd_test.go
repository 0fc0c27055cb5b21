package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analogrelay/optbridge"
	"github.com/analogrelay/optbridge/native"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"OPTBRIDGE_FALLBACK", "OPTBRIDGE_PRODUCER", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
	prev := optbridge.DefaultFallback().Get()
	t.Cleanup(func() { optbridge.DefaultFallback().Set(prev) })

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestResolveCommand(t *testing.T) {
	cases := []struct {
		desc     string
		args     []string
		expected string
	}{
		{
			desc:     "present value",
			args:     []string{"resolve", "--value", "7"},
			expected: "7",
		},
		{
			desc:     "absent uses default fallback",
			args:     []string{"resolve", "--absent"},
			expected: "30",
		},
		{
			desc:     "malformed discriminant uses fallback",
			args:     []string{"resolve", "--value=-5", "--is-some", "3"},
			expected: "30",
		},
		{
			desc:     "absent with configured fallback",
			args:     []string{"resolve", "--absent", "--fallback", "99"},
			expected: "99",
		},
		{
			desc:     "minimum int32 present",
			args:     []string{"resolve", "--value=-2147483648"},
			expected: "-2147483648",
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			out, err := execute(t, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, strings.TrimSpace(out))
		})
	}
}

func TestResolveCommandNativeProducer(t *testing.T) {
	out, err := execute(t, "resolve", "--producer", "native", "--value", "11")
	if !native.Available {
		assert.ErrorIs(t, err, native.ErrUnavailable)
		return
	}
	require.NoError(t, err)
	assert.Equal(t, "11", strings.TrimSpace(out))

	out, err = execute(t, "resolve", "--producer", "native", "--value", "11", "--is-some", "2")
	require.NoError(t, err)
	assert.Equal(t, "30", strings.TrimSpace(out))
}

func TestResolveCommandUnknownProducer(t *testing.T) {
	_, err := execute(t, "resolve", "--producer", "rust")
	assert.ErrorIs(t, err, optbridge.ErrUnknownProducer)
}

func TestResolveCommandConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "optbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fallback: 42\n"), 0o600))

	out, err := execute(t, "resolve", "--config", path, "--absent")
	require.NoError(t, err)
	assert.Equal(t, "42", strings.TrimSpace(out))

	out, err = execute(t, "resolve", "--config", path, "--absent", "--fallback", "43")
	require.NoError(t, err)
	assert.Equal(t, "43", strings.TrimSpace(out))
}

func TestLayoutCommand(t *testing.T) {
	out, err := execute(t, "layout")
	assert.Contains(t, out, "Go: size=8 value@0 is_some@4")
	if !native.Available {
		assert.ErrorIs(t, err, native.ErrUnavailable)
		return
	}
	require.NoError(t, err)
	assert.Contains(t, out, "Layouts match.")
}

func TestBenchCommand(t *testing.T) {
	out, err := execute(t, "bench", "--workers", "2", "--duration", "50ms", "--absent", "--flip-fallback")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Benchmark Results ===")
	assert.Contains(t, out, "Present: 0")
	assert.Contains(t, out, "| static |")
}

func TestBenchCommandPresent(t *testing.T) {
	out, err := execute(t, "bench", "--workers", "1", "--duration", "20ms")
	require.NoError(t, err)
	assert.Contains(t, out, "Fallback: 0")
}
