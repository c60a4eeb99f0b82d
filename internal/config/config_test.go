package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "ivory", cfg.Theme)
	assert.Equal(t, 2000, cfg.Scrollback)
	assert.True(t, cfg.Echo)
	assert.True(t, cfg.Windows["room"])
	assert.False(t, cfg.Windows["thoughts"])
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twoface.yaml")
	content := `host: 10.0.0.5
port: 8043
theme: ember
echo: false
windows:
  thoughts: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", cfg.Host)
	assert.Equal(t, 8043, cfg.Port)
	assert.Equal(t, "ember", cfg.Theme)
	assert.False(t, cfg.Echo)
	assert.Equal(t, 2000, cfg.Scrollback, "keys absent from the file keep defaults")
	assert.True(t, cfg.Windows["thoughts"])
	assert.True(t, cfg.Windows["room"], "window entries merge over the defaults")
}

func TestLoad_ScrollbackFloor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twoface.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scrollback: 12\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Scrollback)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twoface.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestAddr(t *testing.T) {
	assert.Equal(t, "127.0.0.1:8000", Default().Addr())

	cfg := Default()
	cfg.Host = "::1"
	cfg.Port = 8043
	assert.Equal(t, "[::1]:8043", cfg.Addr())
}

func TestWatchFile_TicksOnRewrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "highlights.yaml")
	require.NoError(t, os.WriteFile(path, []byte("highlights: []\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := WatchFile(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("highlights:\n  - name: x\n    pattern: y\n"), 0o644))

	select {
	case _, ok := <-ch:
		require.True(t, ok)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for a change tick")
	}

	cancel()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watch channel should close once the context ends")
		}
	}
}

func TestWatchFile_BadDirectory(t *testing.T) {
	_, err := WatchFile(context.Background(), "/definitely/not/here/highlights.yaml")
	assert.Error(t, err)
}
