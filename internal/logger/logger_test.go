package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "run.log")
	log, err := New(Config{Level: "debug", Format: "json", Output: out})
	require.NoError(t, err)

	log.With("movie", "a.mp4").Info("column written", "column", 3, "error", errors.New("boom"))
	log.Sync()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"movie":"a.mp4"`)
	assert.Contains(t, string(data), `"column":3`)
	assert.Contains(t, string(data), `"error":"boom"`)
}

func TestNew_LevelFilters(t *testing.T) {
	out := filepath.Join(t.TempDir(), "run.log")
	log, err := New(Config{Level: "warn", Format: "json", Output: out})
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")
	log.Sync()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestConvertFields_SkipsBadKeys(t *testing.T) {
	fields := convertFields("a", 1, 2, "b", "dangling")
	require.Len(t, fields, 1)
	assert.Equal(t, "a", fields[0].Key)
}
