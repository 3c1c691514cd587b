package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "chart.txt")

	require.NoError(t, WriteFileAtomic(testFile, []byte("first"), 0o644))
	require.NoError(t, WriteFileAtomic(testFile, []byte("second"), 0o600))

	data, err := os.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not remain")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	t.Parallel()
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "nope", "chart.json"), []byte("x"), 0o644)
	assert.Error(t, err)
}

func TestWriteJSONAtomic(t *testing.T) {
	t.Parallel()

	type row struct {
		Hand string  `json:"hand"`
		EV   float64 `json:"ev"`
	}
	path := filepath.Join(t.TempDir(), "chart.json")
	require.NoError(t, WriteJSONAtomic(path, []row{{"AA", 2.5}, {"72o", -1.9}}, 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []row
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, []row{{"AA", 2.5}, {"72o", -1.9}}, got)

	assert.Error(t, WriteJSONAtomic(path, func() {}, 0o644))
}
