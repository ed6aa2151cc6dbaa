package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &Config{
		Addr:                ":9090",
		FPS:                 120,
		Chart:               "charts/level.adofai",
		LogLevel:            "debug",
		Loop:                true,
		DisableAnimateTrack: true,
		Judgment:            Judgment{Difficulty: "Strict", InputOffsetMs: -12.5},
	}
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: 30\njudgment:\n  difficulty: Lenient\n"), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, c.FPS)
	assert.Equal(t, "Lenient", c.Judgment.Difficulty)
	assert.Empty(t, c.Addr)
	assert.False(t, c.Loop)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: [1, 2"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}
