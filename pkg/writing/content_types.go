package writing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/inktrace/inktrace/pkg/db"
)

const (
	contentTypeColumns = `id, name, icon, color, is_built_in, sort_order, created_at`

	createContentTypeStatement = `
	INSERT INTO content_types (id, name, icon, color, is_built_in, sort_order, created_at)
	VALUES (?, ?, ?, ?, 0, ?, ?)
	`

	deleteContentTypeStatement = `
	DELETE FROM content_types WHERE id = ? AND is_built_in = 0
	`
)

// ListContentTypes returns built-in and user types by sort order.
func ListContentTypes(ctx context.Context, conn *sql.DB) ([]ContentType, error) {
	query := fmt.Sprintf("SELECT %s FROM content_types ORDER BY sort_order ASC, name ASC", contentTypeColumns)
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query content types: %w", err)
	}
	defer rows.Close()

	types := make([]ContentType, 0)
	for rows.Next() {
		ct, err := scanContentType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating content type rows: %w", err)
	}
	return types, nil
}

func GetContentType(ctx context.Context, conn *sql.DB, id string) (ContentType, error) {
	query := fmt.Sprintf("SELECT %s FROM content_types WHERE id = ?", contentTypeColumns)
	ct, err := scanContentType(conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ContentType{}, ErrContentTypeNotFound
		}
		return ContentType{}, err
	}
	return ct, nil
}

// CreateContentType adds a user-defined type.
func CreateContentType(ctx context.Context, conn *sql.DB, input NewContentType) (ContentType, error) {
	if err := validateInput(input); err != nil {
		return ContentType{}, err
	}

	id := uuid.New().String()
	_, err := conn.ExecContext(ctx, createContentTypeStatement,
		id,
		input.Name,
		input.Icon,
		input.Color,
		input.SortOrder,
		db.Now(),
	)
	if err != nil {
		return ContentType{}, fmt.Errorf("failed to create content type: %w", err)
	}

	return GetContentType(ctx, conn, id)
}

// DeleteContentType removes a user-defined type. Built-ins are refused with
// ErrBuiltInContentType, types still referenced by items with
// ErrContentTypeInUse.
func DeleteContentType(ctx context.Context, conn *sql.DB, id string) error {
	existing, err := GetContentType(ctx, conn, id)
	if err != nil {
		return err
	}
	if existing.IsBuiltIn {
		return fmt.Errorf("%w: %s", ErrBuiltInContentType, existing.Name)
	}

	res, err := conn.ExecContext(ctx, deleteContentTypeStatement, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s", ErrContentTypeInUse, existing.Name)
		}
		return fmt.Errorf("failed to delete content type %s: %w", id, err)
	}
	matched, err := rowsMatched(res)
	if err != nil {
		return err
	}
	if !matched {
		return ErrContentTypeNotFound
	}
	return nil
}

func scanContentType(row rowScanner) (ContentType, error) {
	var ct ContentType
	err := row.Scan(
		&ct.ID,
		&ct.Name,
		&ct.Icon,
		&ct.Color,
		&ct.IsBuiltIn,
		&ct.SortOrder,
		&ct.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ContentType{}, err
		}
		return ContentType{}, fmt.Errorf("failed to scan content type row: %w", err)
	}
	return ct, nil
}
