package db

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		want    []string
		wantErr string
	}{
		{
			name: "mattn defaults",
			opts: Options{Path: "a.db"},
			want: []string{"a.db?", "_foreign_keys=1", "_journal_mode=DELETE", "_synchronous=FULL", "_busy_timeout=5000"},
		},
		{
			name: "modernc pragmas",
			opts: Options{Path: "a.db", Driver: DriverModernc, JournalMode: "truncate", SyncMode: "normal"},
			want: []string{"_pragma=foreign_keys%281%29", "_pragma=journal_mode%28TRUNCATE%29", "_pragma=synchronous%28NORMAL%29"},
		},
		{
			name: "existing query string is extended",
			opts: Options{Path: "file:a.db?cache=shared"},
			want: []string{"file:a.db?cache=shared&"},
		},
		{name: "empty path", opts: Options{}, wantErr: "must not be empty"},
		{name: "bad sync", opts: Options{Path: "a.db", SyncMode: "sometimes"}, wantErr: "invalid sync pragma value"},
		{name: "bad journal", opts: Options{Path: "a.db", JournalMode: "diary"}, wantErr: "invalid journal mode value"},
		{name: "bad driver", opts: Options{Path: "a.db", Driver: "postgres"}, wantErr: "unsupported driver"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn, err := BuildDSN(tt.opts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, part := range tt.want {
				assert.Contains(t, dsn, part)
			}
		})
	}
}

func TestOpenDBConnection_CreatesFileWithPragmas(t *testing.T) {
	for _, driver := range []string{DriverMattn, DriverModernc} {
		t.Run(driver, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "new.db")

			db, err := OpenDBConnection(Options{Path: path, Driver: driver})
			require.NoError(t, err)
			defer db.Close()

			_, err = os.Stat(path)
			require.NoError(t, err, "database file should be created on open")

			var journalMode string
			require.NoError(t, db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode))
			assert.Equal(t, "delete", strings.ToLower(journalMode))

			var fk int
			require.NoError(t, db.QueryRow("PRAGMA foreign_keys;").Scan(&fk))
			assert.Equal(t, 1, fk)
		})
	}
}
