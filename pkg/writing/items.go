package writing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/inktrace/inktrace/pkg/db"
)

const (
	writingItemColumns = `
	wi.id, wi.title, wi.type_id, wi.content, wi.created_time, wi.is_precise_time,
	wi.background, wi.notes, wi.folder_id, wi.created_at, wi.updated_at
	`

	createWritingItemStatement = `
	INSERT INTO writing_items (
		id, title, type_id, content, created_time, is_precise_time,
		background, notes, folder_id, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	updateWritingItemStatement = `
	UPDATE writing_items
	SET title = ?, type_id = ?, content = ?, created_time = ?, is_precise_time = ?,
		background = ?, notes = ?, folder_id = ?, updated_at = ?
	WHERE id = ?
	`

	deleteWritingItemStatement = `
	DELETE FROM writing_items WHERE id = ?
	`

	// Tags for a batch of items, keyed by item id.
	listTagsForItemsStatement = `
	SELECT wit.writing_item_id, t.id, t.name, t.color, t.usage_count, t.created_at
	FROM writing_item_tags wit
	INNER JOIN tags t ON t.id = wit.tag_id
	WHERE wit.writing_item_id IN (%s)
	ORDER BY t.name ASC
	`
)

// tagBatchSize bounds the ids bound into one tag query, well under SQLite's
// host parameter limit.
const tagBatchSize = 500

// ListFilter narrows ListWritingItems. The zero value lists everything.
// Unfiled selects items without a folder and takes precedence over FolderID.
type ListFilter struct {
	TypeID   string
	FolderID string
	Unfiled  bool
}

func (f ListFilter) where() (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if f.TypeID != "" {
		clauses = append(clauses, "wi.type_id = ?")
		args = append(args, f.TypeID)
	}
	switch {
	case f.Unfiled:
		clauses = append(clauses, "wi.folder_id IS NULL")
	case f.FolderID != "":
		clauses = append(clauses, "wi.folder_id = ?")
		args = append(args, f.FolderID)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// ListWritingItems returns items newest first, each with its tags. Items
// created within the same timestamp keep insertion order reversed.
func ListWritingItems(ctx context.Context, conn *sql.DB, filter ListFilter) ([]WritingItemWithTags, error) {
	where, args := filter.where()
	query := fmt.Sprintf(
		"SELECT %s FROM writing_items wi %s ORDER BY wi.created_at DESC, wi.rowid DESC",
		writingItemColumns, where,
	)

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query writing items: %w", err)
	}
	defer rows.Close()

	items := make([]WritingItemWithTags, 0)
	index := make(map[string]int)
	for rows.Next() {
		item, err := scanWritingItem(rows)
		if err != nil {
			return nil, err
		}
		index[item.ID] = len(items)
		items = append(items, WritingItemWithTags{WritingItem: item, Tags: make([]Tag, 0)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating writing item rows: %w", err)
	}
	rows.Close()

	if len(items) == 0 {
		return items, nil
	}
	if err := attachTags(ctx, conn, items, index); err != nil {
		return nil, err
	}
	return items, nil
}

// attachTags fills in Tags for every item, querying tagBatchSize items at a
// time.
func attachTags(ctx context.Context, q Querier, items []WritingItemWithTags, index map[string]int) error {
	for start := 0; start < len(items); start += tagBatchSize {
		end := min(start+tagBatchSize, len(items))
		if err := attachTagsBatch(ctx, q, items, items[start:end], index); err != nil {
			return err
		}
	}
	return nil
}

func attachTagsBatch(ctx context.Context, q Querier, items, batch []WritingItemWithTags, index map[string]int) error {
	ids := make([]any, 0, len(batch))
	for _, item := range batch {
		ids = append(ids, item.ID)
	}

	rows, err := q.QueryContext(ctx, fmt.Sprintf(listTagsForItemsStatement, placeholders(len(ids))), ids...)
	if err != nil {
		return fmt.Errorf("failed to fetch tags for writing items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			itemID string
			t      Tag
		)
		if err := rows.Scan(&itemID, &t.ID, &t.Name, &t.Color, &t.UsageCount, &t.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan tag row: %w", err)
		}
		i, ok := index[itemID]
		if !ok {
			continue
		}
		items[i].Tags = append(items[i].Tags, t)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating tag rows: %w", err)
	}
	return nil
}

// GetWritingItem returns the item with its tags, or nil if no item has that id.
func GetWritingItem(ctx context.Context, conn *sql.DB, id string) (*WritingItemWithTags, error) {
	query := fmt.Sprintf("SELECT %s FROM writing_items wi WHERE wi.id = ?", writingItemColumns)

	item, err := scanWritingItem(conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	tags, err := ListTagsForItem(ctx, conn, id)
	if err != nil {
		return nil, err
	}

	return &WritingItemWithTags{WritingItem: item, Tags: tags}, nil
}

// CreateWritingItem stores a new item and links its tags in one transaction.
// An unknown type, folder or tag id rolls back the whole write.
func CreateWritingItem(ctx context.Context, conn *sql.DB, input NewWritingItem) (string, error) {
	if err := validateInput(input); err != nil {
		return "", err
	}

	id := uuid.New().String()
	now := db.Now()

	err := withTx(ctx, conn, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, createWritingItemStatement,
			id,
			input.Title,
			input.TypeID,
			input.Content,
			input.CreatedTime,
			input.IsPreciseTime,
			input.Background,
			input.Notes,
			input.FolderID,
			now,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert writing item: %w", err)
		}
		return LinkTags(ctx, tx, id, input.TagIDs)
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateWritingItem overwrites every mutable field of item id and replaces its
// tag set. It reports false when no item has that id; nothing is written then.
func UpdateWritingItem(ctx context.Context, conn *sql.DB, id string, input NewWritingItem) (bool, error) {
	if err := validateInput(input); err != nil {
		return false, err
	}

	var matched bool
	err := withTx(ctx, conn, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, updateWritingItemStatement,
			input.Title,
			input.TypeID,
			input.Content,
			input.CreatedTime,
			input.IsPreciseTime,
			input.Background,
			input.Notes,
			input.FolderID,
			db.Now(),
			id,
		)
		if err != nil {
			return fmt.Errorf("failed to update writing item %s: %w", id, err)
		}
		matched, err = rowsMatched(res)
		if err != nil {
			return err
		}
		if !matched {
			return nil
		}
		return RelinkTags(ctx, tx, id, input.TagIDs)
	})
	if err != nil {
		return false, err
	}
	return matched, nil
}

// DeleteWritingItem removes the item; its tag links cascade. It reports
// whether an item was removed.
func DeleteWritingItem(ctx context.Context, conn *sql.DB, id string) (bool, error) {
	res, err := conn.ExecContext(ctx, deleteWritingItemStatement, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete writing item %s: %w", id, err)
	}
	return rowsMatched(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWritingItem(row rowScanner) (WritingItem, error) {
	var item WritingItem
	err := row.Scan(
		&item.ID,
		&item.Title,
		&item.TypeID,
		&item.Content,
		&item.CreatedTime,
		&item.IsPreciseTime,
		&item.Background,
		&item.Notes,
		&item.FolderID,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return WritingItem{}, err
		}
		return WritingItem{}, fmt.Errorf("failed to scan writing item row: %w", err)
	}
	return item, nil
}
