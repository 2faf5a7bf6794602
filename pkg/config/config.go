// Package config resolves inktrace settings from defaults, config.yaml, a
// .env file, INKTRACE_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/inktrace/inktrace/pkg/db"
	"github.com/inktrace/inktrace/pkg/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "INKTRACE"

	KeyDB            = "db"
	KeyDriver        = "driver"
	KeyJournalMode   = "journal_mode"
	KeySync          = "sync"
	KeyBusyTimeoutMS = "busy_timeout_ms"
	KeyMaxOpenConns  = "max_open_conns"
	KeyLogLevel      = "log_level"
	KeyLogFile       = "log_file"
)

// Config is the resolved runtime configuration.
type Config struct {
	DBPath        string
	Driver        string
	JournalMode   string
	SyncMode      string
	BusyTimeoutMS int
	MaxOpenConns  int
	LogLevel      string
	LogFile       string
}

// Sources says where to look. Empty fields fall back to the per-user config
// directory and ".env" in the working directory.
type Sources struct {
	ConfigDir string
	EnvFile   string
}

// New returns a viper instance with defaults, the optional config.yaml and
// the environment wired in. Callers bind their flags on top of it.
func New(src Sources) (*viper.Viper, error) {
	envFile := src.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// Variables already set in the environment win over .env.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	configDir := src.ConfigDir
	if configDir == "" {
		configDir = utils.GetDefaultConfigDir()
	}

	v := viper.New()
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyDriver, db.DriverMattn)
	v.SetDefault(KeyJournalMode, db.DefaultJournalMode)
	v.SetDefault(KeySync, db.DefaultSyncMode)
	v.SetDefault(KeyBusyTimeoutMS, db.DefaultBusyTimeout)
	v.SetDefault(KeyMaxOpenConns, db.DefaultMaxOpen)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return v, nil
}

// FromViper reads the resolved values out of v.
func FromViper(v *viper.Viper) Config {
	return Config{
		DBPath:        v.GetString(KeyDB),
		Driver:        v.GetString(KeyDriver),
		JournalMode:   v.GetString(KeyJournalMode),
		SyncMode:      v.GetString(KeySync),
		BusyTimeoutMS: v.GetInt(KeyBusyTimeoutMS),
		MaxOpenConns:  v.GetInt(KeyMaxOpenConns),
		LogLevel:      v.GetString(KeyLogLevel),
		LogFile:       v.GetString(KeyLogFile),
	}
}

// DBOptions converts c into connection options for path, which must already
// be resolved.
func (c Config) DBOptions(path string) db.Options {
	return db.Options{
		Path:          path,
		Driver:        c.Driver,
		JournalMode:   c.JournalMode,
		SyncMode:      c.SyncMode,
		BusyTimeoutMS: c.BusyTimeoutMS,
		MaxOpenConns:  c.MaxOpenConns,
	}
}
