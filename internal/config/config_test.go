package config

import (
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level = "debug"

[render]
width = 640
background = "#ffffff"

[watch]
enabled = false
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Render.Width)
	assert.Equal(t, 768, cfg.Render.Height, "unset fields keep defaults")
	assert.False(t, cfg.Watch.Enabled)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, cfg.Background())

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("render = ["), 0o644))
	_, err = LoadOrDefault(path)
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	cfg := Config{
		LogLevel: "loud",
		Render:   RenderConfig{Background: "purple"},
		Watch:    WatchConfig{Enabled: true},
	}
	cfg.Resolve(Flags{Width: 320, NoWatch: true})

	assert.Equal(t, 320, cfg.Render.Width)
	assert.Equal(t, Default().Render.Height, cfg.Render.Height)
	assert.Equal(t, Default().Render.Background, cfg.Render.Background)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Watch.Enabled)
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce())
	assert.Equal(t, Default().Mesh.Cells, cfg.DocumentOptions().Cells)

	cfg.Resolve(Flags{Verbose: true})
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	want := Default()
	want.Render.Wireframe = true
	require.NoError(t, want.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
