package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 1080, cfg.Art.Width)
	assert.Equal(t, 1920, cfg.Art.Height)
	assert.Equal(t, "average", cfg.Art.Style)
	assert.Equal(t, "movie.mp4", cfg.MoviePath)
	assert.Equal(t, "art.png", cfg.ArtPath)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
movie_path: /videos/metropolis.mkv
art:
  width: 640
  style: strip
preview:
  http_addr: ":8090"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/videos/metropolis.mkv", cfg.MoviePath)
	assert.Equal(t, 640, cfg.Art.Width)
	assert.Equal(t, 1920, cfg.Art.Height)
	assert.Equal(t, "strip", cfg.Art.Style)
	assert.Equal(t, ":8090", cfg.Preview.HTTPAddr)
	assert.Equal(t, "art.png", cfg.ArtPath)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "art:\n  width: 640\n")
	t.Setenv("MWA_ART_WIDTH", "320")
	t.Setenv("MWA_ART_PATH", "/tmp/out.bmp")
	t.Setenv("MWA_PREVIEW_WINDOW", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 320, cfg.Art.Width)
	assert.Equal(t, "/tmp/out.bmp", cfg.ArtPath)
	assert.True(t, cfg.Preview.Window)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "art: [oops"))
	assert.Error(t, err)

	t.Setenv("MWA_ART_HEIGHT", "tall")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Art.Width = 0
	cfg.Art.Height = -1
	cfg.ArtPath = ""
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "art.width")
	assert.Contains(t, err.Error(), "art.height")
	assert.Contains(t, err.Error(), "art_path")
	assert.Contains(t, err.Error(), "log.format")
}

func TestValidate_AcceptsUnknownStyle(t *testing.T) {
	cfg := Default()
	cfg.Art.Style = "sepia"
	assert.NoError(t, cfg.Validate())
}
