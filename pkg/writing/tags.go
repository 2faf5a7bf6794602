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
	linkTagStatement = `
	INSERT OR IGNORE INTO writing_item_tags (writing_item_id, tag_id)
	VALUES (?, ?)
	`

	unlinkAllTagsStatement = `
	DELETE FROM writing_item_tags WHERE writing_item_id = ?
	`

	createTagStatement = `
	INSERT INTO tags (id, name, color, usage_count, created_at)
	VALUES (?, ?, ?, 0, ?)
	`

	getTagStatement = `
	SELECT id, name, color, usage_count, created_at
	FROM tags
	WHERE id = ?
	`

	listTagsStatement = `
	SELECT id, name, color, usage_count, created_at
	FROM tags
	ORDER BY name ASC
	`

	listTagsForItemStatement = `
	SELECT t.id, t.name, t.color, t.usage_count, t.created_at
	FROM tags t
	INNER JOIN writing_item_tags wit ON t.id = wit.tag_id
	WHERE wit.writing_item_id = ?
	ORDER BY t.name ASC
	`

	deleteTagStatement = `
	DELETE FROM tags WHERE id = ?
	`

	recountTagUsageStatement = `
	UPDATE tags
	SET usage_count = (SELECT COUNT(*) FROM writing_item_tags wit WHERE wit.tag_id = tags.id)
	`
)

// LinkTags associates itemID with every id in tagIDs, skipping pairs that
// already exist. Duplicates in tagIDs are harmless. Tag ids are not looked up
// first; with foreign keys enforced an unknown id fails the insert. The first
// failure stops the loop and is returned.
func LinkTags(ctx context.Context, q Querier, itemID string, tagIDs []string) error {
	for _, tagID := range tagIDs {
		if _, err := q.ExecContext(ctx, linkTagStatement, itemID, tagID); err != nil {
			return fmt.Errorf("failed to associate tag %s with writing item %s: %w", tagID, itemID, err)
		}
	}
	return nil
}

// RelinkTags replaces the whole association set of itemID with tagIDs.
// It deletes every existing link and then calls LinkTags, so calling it
// twice with the same ids leaves the same rows.
func RelinkTags(ctx context.Context, q Querier, itemID string, tagIDs []string) error {
	if _, err := q.ExecContext(ctx, unlinkAllTagsStatement, itemID); err != nil {
		return fmt.Errorf("failed to remove tag associations for writing item %s: %w", itemID, err)
	}
	return LinkTags(ctx, q, itemID, tagIDs)
}

// ListTagsForItem returns the tags linked to itemID, sorted by name. An item
// without tags yields an empty slice.
func ListTagsForItem(ctx context.Context, q Querier, itemID string) ([]Tag, error) {
	rows, err := q.QueryContext(ctx, listTagsForItemStatement, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tags for writing item %s: %w", itemID, err)
	}
	defer rows.Close()

	tags, err := scanTags(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tags for writing item %s: %w", itemID, err)
	}
	return tags, nil
}

func CreateTag(ctx context.Context, conn *sql.DB, newTag NewTag) (Tag, error) {
	if err := validateInput(newTag); err != nil {
		return Tag{}, err
	}

	id := uuid.New().String()
	_, err := conn.ExecContext(ctx, createTagStatement, id, newTag.Name, newTag.Color, db.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return Tag{}, fmt.Errorf("%w: %s", ErrTagExists, newTag.Name)
		}
		return Tag{}, fmt.Errorf("failed to create tag: %w", err)
	}

	return GetTag(ctx, conn, id)
}

func GetTag(ctx context.Context, conn *sql.DB, id string) (Tag, error) {
	var tag Tag
	err := conn.QueryRowContext(ctx, getTagStatement, id).Scan(
		&tag.ID,
		&tag.Name,
		&tag.Color,
		&tag.UsageCount,
		&tag.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Tag{}, ErrTagNotFound
		}
		return Tag{}, fmt.Errorf("failed to fetch tag %s: %w", id, err)
	}
	return tag, nil
}

// ListTags retrieves the whole tag vocabulary ordered by name.
func ListTags(ctx context.Context, conn *sql.DB) ([]Tag, error) {
	rows, err := conn.QueryContext(ctx, listTagsStatement)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

// DeleteTag removes a tag; its associations go with it.
func DeleteTag(ctx context.Context, conn *sql.DB, id string) error {
	res, err := conn.ExecContext(ctx, deleteTagStatement, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag %s: %w", id, err)
	}
	matched, err := rowsMatched(res)
	if err != nil {
		return err
	}
	if !matched {
		return ErrTagNotFound
	}
	return nil
}

// RecountTagUsage recomputes usage_count for every tag from the association
// table. Item operations never touch the counter.
func RecountTagUsage(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, recountTagUsageStatement); err != nil {
		return fmt.Errorf("failed to recount tag usage: %w", err)
	}
	return nil
}

func scanTags(rows *sql.Rows) ([]Tag, error) {
	tags := make([]Tag, 0)
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.UsageCount, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag rows: %w", err)
	}
	return tags, nil
}
