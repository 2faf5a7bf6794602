package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver (cgo)
	_ "modernc.org/sqlite"          // SQLite driver (pure Go)
)

const (
	// DriverMattn is the cgo driver registered by github.com/mattn/go-sqlite3.
	DriverMattn = "sqlite3"
	// DriverModernc is the pure Go driver registered by modernc.org/sqlite.
	DriverModernc = "sqlite"

	// DefaultJournalMode keeps everything in the single database file; no -wal
	// sidecar is produced.
	DefaultJournalMode = "DELETE"
	DefaultSyncMode    = "FULL"
	DefaultBusyTimeout = 5000
	DefaultMaxOpen     = 4
)

// validSyncModes lists the allowed values for the synchronous pragma.
var validSyncModes = map[string]bool{
	"OFF":    true,
	"NORMAL": true,
	"FULL":   true,
	"EXTRA":  true,
}

// validJournalModes lists the allowed values for the journal_mode pragma.
var validJournalModes = map[string]bool{
	"DELETE":   true,
	"TRUNCATE": true,
	"PERSIST":  true,
	"MEMORY":   true,
	"WAL":      true,
	"OFF":      true,
}

// Options describes how to reach the storage file.
type Options struct {
	Path          string
	Driver        string // DriverMattn (default) or DriverModernc
	JournalMode   string // defaults to DefaultJournalMode
	SyncMode      string // defaults to DefaultSyncMode
	BusyTimeoutMS int
	MaxOpenConns  int
}

func (o Options) withDefaults() Options {
	if o.Driver == "" {
		o.Driver = DriverMattn
	}
	if o.JournalMode == "" {
		o.JournalMode = DefaultJournalMode
	}
	if o.SyncMode == "" {
		o.SyncMode = DefaultSyncMode
	}
	if o.BusyTimeoutMS <= 0 {
		o.BusyTimeoutMS = DefaultBusyTimeout
	}
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = DefaultMaxOpen
	}
	o.JournalMode = strings.ToUpper(o.JournalMode)
	o.SyncMode = strings.ToUpper(o.SyncMode)
	return o
}

// BuildDSN turns opts into a connection string for the selected driver.
// Pragmas travel in the DSN so every pooled connection gets them, not only
// the first one.
func BuildDSN(opts Options) (string, error) {
	opts = opts.withDefaults()

	if opts.Path == "" {
		return "", fmt.Errorf("database path must not be empty")
	}
	if !validJournalModes[opts.JournalMode] {
		return "", fmt.Errorf("invalid journal mode value: %s. Must be one of DELETE, TRUNCATE, PERSIST, MEMORY, WAL, OFF", opts.JournalMode)
	}
	if !validSyncModes[opts.SyncMode] {
		return "", fmt.Errorf("invalid sync pragma value: %s. Must be one of OFF, NORMAL, FULL, EXTRA", opts.SyncMode)
	}

	params := url.Values{}
	switch opts.Driver {
	case DriverMattn:
		params.Add("_foreign_keys", "1")
		params.Add("_journal_mode", opts.JournalMode)
		params.Add("_synchronous", opts.SyncMode)
		params.Add("_busy_timeout", fmt.Sprint(opts.BusyTimeoutMS))
	case DriverModernc:
		params.Add("_pragma", "foreign_keys(1)")
		params.Add("_pragma", fmt.Sprintf("journal_mode(%s)", opts.JournalMode))
		params.Add("_pragma", fmt.Sprintf("synchronous(%s)", opts.SyncMode))
		params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", opts.BusyTimeoutMS))
	default:
		return "", fmt.Errorf("unsupported driver %q: must be %q or %q", opts.Driver, DriverMattn, DriverModernc)
	}

	if strings.Contains(opts.Path, "?") {
		return opts.Path + "&" + params.Encode(), nil
	}
	return opts.Path + "?" + params.Encode(), nil
}

// OpenDBConnection opens the shared connection pool described by opts.
// The returned *sql.DB is safe for concurrent use; callers create it once and
// pass it to every operation.
func OpenDBConnection(opts Options) (*sql.DB, error) {
	opts = opts.withDefaults()

	dsn, err := BuildDSN(opts)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(opts.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database with DSN '%s': %w", dsn, err)
	}

	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxOpenConns)

	// Ping the database to ensure the connection is alive and the DSN is valid.
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database with DSN '%s': %w", dsn, err)
	}

	return db, nil
}
