package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.Listen)
	require.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	require.Equal(t, "dicebingo.db", cfg.Database.Path)
	require.Equal(t, DefaultSessionTTLSeconds, cfg.Session.DefaultTTLSeconds)
}

func TestLoadOverridesAndBackfills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "server:\n  listen: \":9090\"\nsession:\n  default_ttl_seconds: 60\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Server.Listen)
	require.Equal(t, uint64(60), cfg.Session.DefaultTTLSeconds)
	// Unset fields fall back to defaults.
	require.Equal(t, "dicebingo.db", cfg.Database.Path)
	require.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
