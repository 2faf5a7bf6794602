package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// TimestampLayout is the fixed-width ISO-8601 layout used for every stored
// timestamp. Fixed width keeps lexical order equal to chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z"

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Now returns the current UTC time formatted with TimestampLayout.
func Now() string {
	return FormatTimestamp(time.Now())
}

// BuiltInContentType describes a content type seeded on first start.
type BuiltInContentType struct {
	ID    string
	Name  string
	Icon  string
	Color string
}

// BuiltInContentTypes is the fixed seed list. Position in the slice is the
// sort order.
var BuiltInContentTypes = []BuiltInContentType{
	{ID: "poem-type", Name: "Poem", Icon: "poem", Color: "#4CAF50"},
	{ID: "article-type", Name: "Article", Icon: "article", Color: "#2196F3"},
	{ID: "tech-type", Name: "Tech Article", Icon: "tech", Color: "#FF9800"},
	{ID: "comment-type", Name: "Commentary", Icon: "comment", Color: "#F44336"},
	{ID: "note-type", Name: "Jotting", Icon: "note", Color: "#9C27B0"},
	{ID: "reflection-type", Name: "Reflection", Icon: "reflection", Color: "#607D8B"},
}

// A built-in is skipped when its id is taken or a built-in with the same name
// or icon is already present. Databases written by earlier releases carry the
// built-ins under random ids and localized names; the icon still matches.
const seedContentTypeStatement = `
INSERT OR IGNORE INTO content_types (id, name, icon, color, is_built_in, sort_order, created_at)
SELECT ?, ?, ?, ?, 1, ?, ?
WHERE NOT EXISTS (
	SELECT 1 FROM content_types WHERE is_built_in = 1 AND (name = ? OR icon = ?)
)
`

// SeedBuiltInContentTypes inserts the built-in content types that are not
// there yet and reports how many rows were added.
func SeedBuiltInContentTypes(ctx context.Context, db *sql.DB) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	now := Now()
	inserted := 0
	for i, ct := range BuiltInContentTypes {
		res, err := tx.ExecContext(ctx, seedContentTypeStatement,
			ct.ID, ct.Name, ct.Icon, ct.Color, i, now, ct.Name, ct.Icon)
		if err != nil {
			return 0, fmt.Errorf("seeding content type %s: %w", ct.Name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("seeding content type %s: %w", ct.Name, err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing seed transaction: %w", err)
	}
	return inserted, nil
}
