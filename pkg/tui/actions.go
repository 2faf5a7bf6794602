package tui

import (
	"context"
	"database/sql"

	"github.com/inktrace/inktrace/pkg/writing"

	tea "github.com/charmbracelet/bubbletea"
)

type contentTypesMsg []writing.ContentType

// itemsMsg carries the items of one content type; typeID lets Update drop
// results for a type the cursor has already left.
type itemsMsg struct {
	typeID string
	items  []writing.WritingItemWithTags
}

type itemDetailsMsg struct {
	item *writing.WritingItemWithTags
}

type itemCreatedMsg struct {
	id string
}

type itemDeletedMsg struct {
	id string
}

// List content types from the database and return tea data
func listContentTypes(db *sql.DB) tea.Cmd {
	return func() tea.Msg {
		types, err := writing.ListContentTypes(context.Background(), db)
		if err != nil {
			return err
		}
		return contentTypesMsg(types)
	}
}

// List writing items of one content type, newest first
func listItems(db *sql.DB, typeID string) tea.Cmd {
	return func() tea.Msg {
		items, err := writing.ListWritingItems(context.Background(), db, writing.ListFilter{TypeID: typeID})
		if err != nil {
			return err
		}
		return itemsMsg{typeID: typeID, items: items}
	}
}

// Reload one item with its tags for the details column
func getItemDetails(db *sql.DB, id string) tea.Cmd {
	return func() tea.Msg {
		item, err := writing.GetWritingItem(context.Background(), db, id)
		if err != nil {
			return err
		}
		return itemDetailsMsg{item: item}
	}
}

// Create an untagged item with only a title
func createItem(db *sql.DB, typeID, title string) tea.Cmd {
	return func() tea.Msg {
		id, err := writing.CreateWritingItem(context.Background(), db, writing.NewWritingItem{
			Title:  title,
			TypeID: typeID,
		})
		if err != nil {
			return err
		}
		return itemCreatedMsg{id: id}
	}
}

func deleteItem(db *sql.DB, id string) tea.Cmd {
	return func() tea.Msg {
		if _, err := writing.DeleteWritingItem(context.Background(), db, id); err != nil {
			return err
		}
		return itemDeletedMsg{id: id}
	}
}

// Get database name and file path
func getDbPragmaList(db *sql.DB) (string, string) {
	var name, file string
	err := db.QueryRow(`PRAGMA database_list`).Scan(new(int), &name, &file)
	if err != nil {
		return name, file
	}
	return name, file
}
