package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// openTestDB opens a fresh database file in a temp dir. A file, rather than
// :memory:, keeps every pooled connection on the same database.
func openTestDB(t *testing.T, driver string) *sql.DB {
	t.Helper()
	db, err := OpenDBConnection(Options{
		Path:   filepath.Join(t.TempDir(), "inktrace.db"),
		Driver: driver,
	})
	if err != nil {
		t.Fatalf("OpenDBConnection failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// checkTableExists is a test helper to verify if a table exists in the database.
func checkTableExists(t *testing.T, db *sql.DB, tableName string) {
	t.Helper()
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?;", tableName).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			t.Errorf("Table '%s' does not exist, but it should.", tableName)
			return
		}
		t.Fatalf("Error checking if table '%s' exists: %v", tableName, err)
	}
}

func countBuiltIns(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM content_types WHERE is_built_in = 1").Scan(&n); err != nil {
		t.Fatalf("counting built-in content types: %v", err)
	}
	return n
}

func TestUpgradeDB_NewDatabase(t *testing.T) {
	db := openTestDB(t, DriverMattn)
	ctx := context.Background()

	if err := UpgradeDB(ctx, db, "test.db", TargetSchemaVersion, zerolog.Nop()); err != nil {
		t.Fatalf("UpgradeDB failed on a new database: %v", err)
	}

	for _, tableName := range append([]string{"inktrace_versions"}, DataTables...) {
		checkTableExists(t, db, tableName)
	}

	version, err := GetComponentSchemaVersion(ctx, db, WritingDBComponent)
	if err != nil {
		t.Fatalf("GetComponentSchemaVersion failed after UpgradeDB: %v", err)
	}
	if version != TargetSchemaVersion {
		t.Errorf("Expected component '%s' to be at version %d, but got %d", WritingDBComponent, TargetSchemaVersion, version)
	}
}

func TestGetComponentSchemaVersion_NoTable(t *testing.T) {
	db := openTestDB(t, DriverMattn)

	version, err := GetComponentSchemaVersion(context.Background(), db, WritingDBComponent)
	if err != nil {
		t.Fatalf("expected no error for a blank database, got %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 for a blank database, got %d", version)
	}
}

func TestUpgradeDB_AlreadyUpToDate(t *testing.T) {
	db := openTestDB(t, DriverMattn)
	ctx := context.Background()

	if err := InitializeSchema(ctx, db, TargetSchemaVersion); err != nil {
		t.Fatalf("InitializeSchema failed: %v", err)
	}
	if err := UpgradeDB(ctx, db, "test.db", TargetSchemaVersion, zerolog.Nop()); err != nil {
		t.Fatalf("UpgradeDB failed on an up-to-date database: %v", err)
	}

	version, err := GetComponentSchemaVersion(ctx, db, WritingDBComponent)
	if err != nil {
		t.Fatalf("GetComponentSchemaVersion failed: %v", err)
	}
	if version != TargetSchemaVersion {
		t.Errorf("Expected component '%s' to be at version %d, but got %d", WritingDBComponent, TargetSchemaVersion, version)
	}
}

func TestUpgradeDB_AlreadyUpToDateRestoresMissingTable(t *testing.T) {
	db := openTestDB(t, DriverMattn)
	ctx := context.Background()

	if err := InitializeSchema(ctx, db, TargetSchemaVersion); err != nil {
		t.Fatalf("InitializeSchema failed: %v", err)
	}
	if _, err := db.ExecContext(ctx, "DROP TABLE writing_item_tags;"); err != nil {
		t.Fatalf("dropping writing_item_tags: %v", err)
	}

	if err := UpgradeDB(ctx, db, "test.db", TargetSchemaVersion, zerolog.Nop()); err != nil {
		t.Fatalf("UpgradeDB failed: %v", err)
	}
	checkTableExists(t, db, "writing_item_tags")
}

func TestUpgradeDB_VersionMismatch(t *testing.T) {
	tests := []struct {
		name     string
		dbAt     int64
		appWants int64
		wantMsg  string
	}{
		{"older database", 1, 2, "which is older than application's target schema version"},
		{"newer database", 2, 1, "which is newer than application's target schema version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openTestDB(t, DriverMattn)
			ctx := context.Background()

			if err := InitializeSchema(ctx, db, tt.dbAt); err != nil {
				t.Fatalf("InitializeSchema to version %d failed: %v", tt.dbAt, err)
			}

			err := UpgradeDB(ctx, db, "test.db", tt.appWants, zerolog.Nop())
			if err == nil {
				t.Fatalf("UpgradeDB should have failed, but it did not")
			}
			want := fmt.Sprintf("has schema version %d, %s %d", tt.dbAt, tt.wantMsg, tt.appWants)
			if !strings.Contains(err.Error(), want) {
				t.Errorf("UpgradeDB error message mismatch.\nExpected to contain: %s\nGot: %s", want, err.Error())
			}

			current, err := GetComponentSchemaVersion(ctx, db, WritingDBComponent)
			if err != nil {
				t.Fatalf("GetComponentSchemaVersion failed: %v", err)
			}
			if current != tt.dbAt {
				t.Errorf("schema version changed from %d to %d after a failed upgrade", tt.dbAt, current)
			}
		})
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	for _, driver := range []string{DriverMattn, DriverModernc} {
		t.Run(driver, func(t *testing.T) {
			db := openTestDB(t, driver)
			ctx := context.Background()

			for i := 0; i < 2; i++ {
				if err := EnsureSchema(ctx, db, "test.db", zerolog.Nop()); err != nil {
					t.Fatalf("EnsureSchema run %d failed: %v", i+1, err)
				}
			}

			if got := countBuiltIns(t, db); got != len(BuiltInContentTypes) {
				t.Errorf("expected %d built-in content types after two runs, got %d", len(BuiltInContentTypes), got)
			}
		})
	}
}

func TestEnsureSchema_WrapsInitializationError(t *testing.T) {
	db := openTestDB(t, DriverMattn)
	ctx := context.Background()

	if err := InitializeSchema(ctx, db, TargetSchemaVersion+1); err != nil {
		t.Fatalf("InitializeSchema failed: %v", err)
	}

	err := EnsureSchema(ctx, db, "test.db", zerolog.Nop())
	if !errors.Is(err, ErrInitialization) {
		t.Fatalf("expected ErrInitialization, got %v", err)
	}
}

func TestEnsureSchema_DatabaseFromEarlierRelease(t *testing.T) {
	db := openTestDB(t, DriverMattn)
	ctx := context.Background()

	// Earlier releases seeded the built-ins under random ids and localized names.
	if _, err := db.ExecContext(ctx, `
CREATE TABLE content_types (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    icon TEXT,
    color TEXT,
    is_built_in INTEGER DEFAULT 0,
    sort_order INTEGER DEFAULT 0,
    created_at TEXT DEFAULT CURRENT_TIMESTAMP
);`); err != nil {
		t.Fatalf("creating content_types: %v", err)
	}
	legacy := []struct{ name, icon, color string }{
		{"诗", "poem", "#4CAF50"},
		{"普通文章", "article", "#2196F3"},
		{"技术文章", "tech", "#FF9800"},
		{"时事评论", "comment", "#F44336"},
		{"散记", "note", "#9C27B0"},
		{"人生感悟", "reflection", "#607D8B"},
	}
	for i, ct := range legacy {
		_, err := db.ExecContext(ctx,
			`INSERT INTO content_types (id, name, icon, color, is_built_in, sort_order) VALUES (?, ?, ?, ?, 1, ?)`,
			fmt.Sprintf("legacy-%d", i), ct.name, ct.icon, ct.color, i)
		if err != nil {
			t.Fatalf("inserting legacy content type %s: %v", ct.icon, err)
		}
	}

	if err := EnsureSchema(ctx, db, "test.db", zerolog.Nop()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	if got := countBuiltIns(t, db); got != len(legacy) {
		t.Errorf("expected %d built-in content types after bootstrap, got %d", len(legacy), got)
	}
}
