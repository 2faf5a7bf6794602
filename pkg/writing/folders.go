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
	createFolderStatement = `
	INSERT INTO folders (id, name, parent_id, sort_order, created_at)
	VALUES (?, ?, ?, ?, ?)
	`

	getFolderStatement = `
	SELECT id, name, parent_id, sort_order, created_at
	FROM folders
	WHERE id = ?
	`

	listFoldersStatement = `
	SELECT id, name, parent_id, sort_order, created_at
	FROM folders
	ORDER BY sort_order ASC, name ASC
	`

	deleteFolderStatement = `
	DELETE FROM folders WHERE id = ?
	`
)

// CreateFolder adds a folder. A ParentID that names no folder is rejected
// with ErrFolderNotFound.
func CreateFolder(ctx context.Context, conn *sql.DB, newFolder NewFolder) (Folder, error) {
	if err := validateInput(newFolder); err != nil {
		return Folder{}, err
	}

	id := uuid.New().String()
	_, err := conn.ExecContext(ctx, createFolderStatement,
		id,
		newFolder.Name,
		newFolder.ParentID,
		newFolder.SortOrder,
		db.Now(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return Folder{}, fmt.Errorf("%w: parent %s", ErrFolderNotFound, *newFolder.ParentID)
		}
		return Folder{}, fmt.Errorf("failed to create folder: %w", err)
	}

	return GetFolder(ctx, conn, id)
}

func GetFolder(ctx context.Context, conn *sql.DB, id string) (Folder, error) {
	var folder Folder
	err := conn.QueryRowContext(ctx, getFolderStatement, id).Scan(
		&folder.ID,
		&folder.Name,
		&folder.ParentID,
		&folder.SortOrder,
		&folder.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Folder{}, ErrFolderNotFound
		}
		return Folder{}, fmt.Errorf("failed to fetch folder %s: %w", id, err)
	}
	return folder, nil
}

// ListFolders returns every folder flat; callers build the tree from ParentID.
func ListFolders(ctx context.Context, conn *sql.DB) ([]Folder, error) {
	rows, err := conn.QueryContext(ctx, listFoldersStatement)
	if err != nil {
		return nil, fmt.Errorf("failed to query folders: %w", err)
	}
	defer rows.Close()

	folders := make([]Folder, 0)
	for rows.Next() {
		var f Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.ParentID, &f.SortOrder, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan folder row: %w", err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating folder rows: %w", err)
	}
	return folders, nil
}

// DeleteFolder removes an empty folder. Folders that still hold items or
// subfolders are refused with ErrFolderInUse.
func DeleteFolder(ctx context.Context, conn *sql.DB, id string) error {
	res, err := conn.ExecContext(ctx, deleteFolderStatement, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s", ErrFolderInUse, id)
		}
		return fmt.Errorf("failed to delete folder %s: %w", id, err)
	}
	matched, err := rowsMatched(res)
	if err != nil {
		return err
	}
	if !matched {
		return ErrFolderNotFound
	}
	return nil
}
