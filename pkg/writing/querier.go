// Package writing stores writing items, their content types, folders and tags.
//
// Every operation takes the shared *sql.DB pool explicitly. Multi-statement
// writes (creating or updating an item together with its tag links) run in a
// single transaction.
package writing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTagNotFound         = errors.New("tag not found")
	ErrTagExists           = errors.New("tag name already exists")
	ErrFolderNotFound      = errors.New("folder not found")
	ErrContentTypeNotFound = errors.New("content type not found")
	ErrBuiltInContentType  = errors.New("built-in content types cannot be deleted")
	ErrContentTypeInUse    = errors.New("content type is still used by writing items")
	ErrFolderInUse         = errors.New("folder still holds writing items or subfolders")
)

// Querier is the subset of *sql.DB and *sql.Tx used by statements that may
// run either standalone or inside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// withTx runs fn in a transaction, committing only if fn succeeds.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure. Both
// SQLite drivers surface the engine's message text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation reports whether err is a FOREIGN KEY constraint failure.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func rowsMatched(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// placeholders returns "?,?,?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}
