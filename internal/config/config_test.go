package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("bankbuddy", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load("bankbuddy", []string{"-db", "/tmp/other.db", "-log-level", "debug"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	_, err := Load("bankbuddy", []string{"-log-level", "loud"})
	assert.Error(t, err)
}
