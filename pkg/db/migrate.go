package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// TargetSchemaVersion is the highest schema version this build understands
	// for the writing component.
	TargetSchemaVersion int64 = 1
	// WritingDBComponent names the writing-items component in inktrace_versions.
	WritingDBComponent = "writingdb"
)

// ErrInitialization marks a failure that must abort application start.
var ErrInitialization = errors.New("storage initialization failed")

// GetComponentSchemaVersion retrieves the schema version for a given component.
// Returns 0 if the component is not found or the versions table does not exist.
func GetComponentSchemaVersion(ctx context.Context, db *sql.DB, componentName string) (int64, error) {
	var version int64
	err := db.QueryRowContext(ctx, `SELECT version FROM inktrace_versions WHERE component = ?;`, componentName).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		if strings.Contains(err.Error(), "no such table") {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to scan version for component '%s': %w", componentName, err)
	}
	return version, nil
}

// InitializeSchema creates every table and index (all statements are
// IF NOT EXISTS) and records schemaVersionToSet for the writing component.
func InitializeSchema(ctx context.Context, db *sql.DB, schemaVersionToSet int64) error {
	if err := createTables(ctx, db); err != nil {
		return err
	}

	_, err := db.ExecContext(ctx, `
INSERT INTO inktrace_versions (component, version, created_at) VALUES (?, ?, ?)
ON CONFLICT(component) DO UPDATE SET version = excluded.version, created_at = excluded.created_at;`,
		WritingDBComponent, schemaVersionToSet, Now())
	if err != nil {
		return fmt.Errorf("failed to insert/update version for component %s to %d: %w", WritingDBComponent, schemaVersionToSet, err)
	}
	return nil
}

// createTables runs the v1 DDL. Every statement is IF NOT EXISTS, so it also
// restores tables missing from a database that is already versioned.
func createTables(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaV1 {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema v1 statement: %w", err)
		}
	}
	return nil
}

// UpgradeDB brings the writing component of db to appTargetSchemaVersion.
// dbIdentifier is only used in log lines and error messages.
func UpgradeDB(ctx context.Context, db *sql.DB, dbIdentifier string, appTargetSchemaVersion int64, logger zerolog.Logger) error {
	currentDBVersion, err := GetComponentSchemaVersion(ctx, db, WritingDBComponent)
	if err != nil {
		return err
	}

	switch {
	case currentDBVersion == 0:
		logger.Info().
			Str("db", dbIdentifier).
			Int64("target_version", appTargetSchemaVersion).
			Msg("initializing schema")
		if err := InitializeSchema(ctx, db, appTargetSchemaVersion); err != nil {
			return fmt.Errorf("failed to initialize component %s in database '%s': %w", WritingDBComponent, dbIdentifier, err)
		}
		return nil
	case currentDBVersion == appTargetSchemaVersion:
		logger.Debug().
			Str("db", dbIdentifier).
			Int64("version", currentDBVersion).
			Msg("schema already up to date")
		if err := createTables(ctx, db); err != nil {
			return fmt.Errorf("failed to check tables of component %s in database '%s': %w", WritingDBComponent, dbIdentifier, err)
		}
		return nil
	case currentDBVersion < appTargetSchemaVersion:
		return fmt.Errorf("component %s in database '%s' has schema version %d, which is older than application's target schema version %d. Automatic migration from this older version is not yet supported", WritingDBComponent, dbIdentifier, currentDBVersion, appTargetSchemaVersion)
	default:
		return fmt.Errorf("component %s in database '%s' has schema version %d, which is newer than application's target schema version %d. Please upgrade the application", WritingDBComponent, dbIdentifier, currentDBVersion, appTargetSchemaVersion)
	}
}

// EnsureSchema is the start-up bootstrap: it creates or checks the schema and
// seeds the built-in content types. It is safe to run on every start. Any
// error wraps ErrInitialization and the caller should abort.
func EnsureSchema(ctx context.Context, db *sql.DB, dbIdentifier string, logger zerolog.Logger) error {
	if err := UpgradeDB(ctx, db, dbIdentifier, TargetSchemaVersion, logger); err != nil {
		return fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	inserted, err := SeedBuiltInContentTypes(ctx, db)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitialization, err)
	}
	if inserted > 0 {
		logger.Info().Int("count", inserted).Msg("seeded built-in content types")
	}

	var journalMode string
	if err := db.QueryRowContext(ctx, "PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("%w: reading journal mode: %w", ErrInitialization, err)
	}
	logger.Info().
		Str("db", dbIdentifier).
		Str("journal_mode", journalMode).
		Msg("database ready")
	return nil
}
