package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBounds(t *testing.T) {
	b, err := parseBounds("13.38, 52.50, 13.43, 52.54")
	require.NoError(t, err)
	assert.Equal(t, 13.38, b.Min(0))
	assert.Equal(t, 52.50, b.Min(1))
	assert.Equal(t, 13.43, b.Max(0))
	assert.Equal(t, 52.54, b.Max(1))

	_, err = parseBounds("13.38,52.50")
	require.Error(t, err)

	_, err = parseBounds("13.38,52.50,east,52.54")
	require.Error(t, err)
}

func TestReadInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "props.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"population":5000}`), 0o644))

	data, err := readInput(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"population":5000}`, string(data))

	_, err = readInput(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestReadInputStdin(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdin
	os.Stdin = r
	t.Cleanup(func() { os.Stdin = orig })

	_, err = w.WriteString(`{"builtup":0.4}`)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := readInput("-")
	require.NoError(t, err)
	assert.JSONEq(t, `{"builtup":0.4}`, string(data))
}
