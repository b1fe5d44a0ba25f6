package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/symcodec/container"
	"github.com/arloliu/symcodec/format"
)

func TestRun_CreatesSampleAndRoundTrips(t *testing.T) {
	input := filepath.Join(t.TempDir(), "values.bin")
	var out bytes.Buffer

	require.NoError(t, run([]string{"--verify", input, "3"}, &out))

	values, err := readValues(input)
	require.NoError(t, err)
	require.Equal(t, dummyValues, values)

	decoded, err := readValues(input + ".enc3.dec3")
	require.NoError(t, err)
	require.Equal(t, dummyValues, decoded)

	data, err := os.ReadFile(input + ".enc3")
	require.NoError(t, err)
	frame, err := container.Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, len(dummyValues), frame.NumValues)
	require.Equal(t, 3, frame.NumComponents)

	require.Contains(t, out.String(), "creating sample file")
	require.Contains(t, out.String(), "verification passed")
}

func TestRun_ExistingInputWithOptions(t *testing.T) {
	input := filepath.Join(t.TempDir(), "in.bin")
	values := make([]uint32, 3000)
	for i := range values {
		values[i] = uint32(i%7) * 1000 //nolint:gosec
	}
	require.NoError(t, writeValues(input, values))

	var out bytes.Buffer
	args := []string{"--compression", "zstd", "--big-endian", "--component-contexts", "--log-level", "debug", "--verify", input, "2"}
	require.NoError(t, run(args, &out))

	data, err := os.ReadFile(input + ".enc2")
	require.NoError(t, err)
	h, err := container.ParseHeader(data)
	require.NoError(t, err)
	require.True(t, h.Flag.IsBigEndian())
	require.Equal(t, format.CompressionZstd, h.Flag.Compression())

	decoded, err := readValues(input + ".enc2.dec2")
	require.NoError(t, err)
	require.Equal(t, values, decoded)

	require.Contains(t, out.String(), "encoding symbols")
}

func TestRun_ComponentsMustDivide(t *testing.T) {
	input := filepath.Join(t.TempDir(), "values.bin")

	err := run([]string{input, "5"}, &bytes.Buffer{})
	require.ErrorContains(t, err, "cannot be split into 5 components")
}

func TestRun_InvalidArguments(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "values.bin")

	require.Error(t, run([]string{}, &bytes.Buffer{}))
	require.Error(t, run([]string{input, "zero"}, &bytes.Buffer{}))
	require.Error(t, run([]string{input, "0"}, &bytes.Buffer{}))
	require.Error(t, run([]string{"--compression", "brotli", input}, &bytes.Buffer{}))
	require.Error(t, run([]string{"--log-level", "loud", input}, &bytes.Buffer{}))
	require.Error(t, run([]string{"--config", filepath.Join(dir, "missing.yaml"), input}, &bytes.Buffer{}))
}

func TestLoadConfig_Sources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "symcodec.yaml")
	require.NoError(t, os.WriteFile(path, []byte("compression: s2\nverify: true\nlog-level: warn\n"), 0o600))

	t.Setenv("SYMCODEC_COMPONENT_CONTEXTS", "true")
	t.Setenv("SYMCODEC_LOG_LEVEL", "error")

	fs := newFlagSet(&bytes.Buffer{})
	require.NoError(t, fs.Parse([]string{"--config", path, "--compression", "lz4"}))

	cfg, err := loadConfig(fs)
	require.NoError(t, err)
	require.Equal(t, "lz4", cfg.Compression)
	require.True(t, cfg.Verify)
	require.True(t, cfg.ComponentContexts)
	require.Equal(t, "error", cfg.LogLevel)
	require.False(t, cfg.BigEndian)
}

func TestReadValues_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o600))

	_, err := readValues(path)
	require.Error(t, err)

	_, err = readValues(filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
}
