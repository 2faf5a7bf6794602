package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/inktrace/inktrace/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestNew_Defaults(t *testing.T) {
	v, err := New(Sources{ConfigDir: t.TempDir(), EnvFile: noEnvFile(t)})
	require.NoError(t, err)

	cfg := FromViper(v)
	assert.Equal(t, "", cfg.DBPath)
	assert.Equal(t, db.DriverMattn, cfg.Driver)
	assert.Equal(t, db.DefaultJournalMode, cfg.JournalMode)
	assert.Equal(t, db.DefaultSyncMode, cfg.SyncMode)
	assert.Equal(t, db.DefaultBusyTimeout, cfg.BusyTimeoutMS)
	assert.Equal(t, db.DefaultMaxOpen, cfg.MaxOpenConns)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestNew_Precedence(t *testing.T) {
	dir := t.TempDir()
	yaml := "db: /from/yaml.db\ndriver: sqlite\nlog_level: debug\nsync: NORMAL\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("INKTRACE_LOG_LEVEL=warn\nINKTRACE_MAX_OPEN_CONNS=2\n"), 0o644))
	t.Setenv("INKTRACE_DB", "/from/env.db")
	t.Cleanup(func() {
		os.Unsetenv("INKTRACE_LOG_LEVEL")
		os.Unsetenv("INKTRACE_MAX_OPEN_CONNS")
	})

	v, err := New(Sources{ConfigDir: dir, EnvFile: envFile})
	require.NoError(t, err)

	cfg := FromViper(v)
	assert.Equal(t, "/from/env.db", cfg.DBPath, "environment beats config.yaml")
	assert.Equal(t, "warn", cfg.LogLevel, ".env beats config.yaml")
	assert.Equal(t, 2, cfg.MaxOpenConns)
	assert.Equal(t, db.DriverModernc, cfg.Driver, "config.yaml beats defaults")
	assert.Equal(t, "NORMAL", cfg.SyncMode)

	v.Set(KeyDB, "/from/flag.db")
	assert.Equal(t, "/from/flag.db", FromViper(v).DBPath)
}

func TestNew_BadConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("db: [unclosed"), 0o644))

	_, err := New(Sources{ConfigDir: dir, EnvFile: noEnvFile(t)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestConfig_DBOptions(t *testing.T) {
	cfg := Config{Driver: db.DriverModernc, JournalMode: "WAL", SyncMode: "NORMAL", BusyTimeoutMS: 10, MaxOpenConns: 1}
	opts := cfg.DBOptions("/tmp/x.db")

	assert.Equal(t, db.Options{
		Path:          "/tmp/x.db",
		Driver:        db.DriverModernc,
		JournalMode:   "WAL",
		SyncMode:      "NORMAL",
		BusyTimeoutMS: 10,
		MaxOpenConns:  1,
	}, opts)
}
