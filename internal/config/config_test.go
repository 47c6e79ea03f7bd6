package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	t.Cleanup(func() { os.Args = old })
	os.Args = append([]string{"vinecli"}, args...)
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetArgs(t)

	cfg := LoadConfig()
	require.Equal(t, "pocketvine.db", cfg.DatabasePath)
	require.EqualValues(t, 10*1024*1024, cfg.StoreQuotaBytes)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_Flags(t *testing.T) {
	resetArgs(t, "-f", "other.db", "-q", "1024", "-t", "60")

	cfg := LoadConfig()
	require.Equal(t, "other.db", cfg.DatabasePath)
	require.EqualValues(t, 1024, cfg.StoreQuotaBytes)
	require.Equal(t, time.Minute, cfg.SessionTTL)
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"database_path": "json.db",
		"session_ttl": "2h",
		"log_level": "debug"
	}`), 0o600))

	resetArgs(t, "-c", path)

	cfg := LoadConfig()
	require.Equal(t, "json.db", cfg.DatabasePath)
	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
	require.Equal(t, "debug", cfg.LogLevel)
	require.EqualValues(t, 10*1024*1024, cfg.StoreQuotaBytes, "absent fields keep defaults")
}

func TestLoadConfig_FlagsBeatJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"database_path": "json.db"}`), 0o600))

	resetArgs(t, "-c", path, "-f", "flag.db")

	cfg := LoadConfig()
	require.Equal(t, "flag.db", cfg.DatabasePath)
}
