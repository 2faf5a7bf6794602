package mcp

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/inktrace/inktrace/pkg/writing"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// matchedResult is returned by update and delete. Matched is false when no
// item had the id; that is not an error.
type matchedResult struct {
	ID      string `json:"id"`
	Matched bool   `json:"matched"`
}

// RegisterTools adds every inktrace tool to s.
func RegisterTools(s *server.MCPServer, db *sql.DB) {
	RegisterPingTool(s)
	RegisterListWritingItemsTool(s, db)
	RegisterGetWritingItemTool(s, db)
	RegisterCreateWritingItemTool(s, db)
	RegisterUpdateWritingItemTool(s, db)
	RegisterDeleteWritingItemTool(s, db)
	RegisterListContentTypesTool(s, db)
	RegisterListTagsTool(s, db)
	RegisterCreateTagTool(s, db)
	RegisterDeleteTagTool(s, db)
	RegisterListFoldersTool(s, db)
	RegisterCreateFolderTool(s, db)
	RegisterDeleteFolderTool(s, db)
}

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the inktrace MCP server is alive."),
	)
	s.AddTool(pingTool, pingHandler)
}

func pingHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong_inktrace"), nil
}

// writingItemOptions are the arguments shared by create_writing_item and
// update_writing_item.
func writingItemOptions(titleDesc string) []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("title", mcp.Required(), mcp.Description(titleDesc)),
		mcp.WithString("type_id", mcp.Required(), mcp.Description("Content type id, e.g. 'poem-type' or 'note-type'.")),
		mcp.WithString("content", mcp.Description("Body text.")),
		mcp.WithString("created_time", mcp.Description("Date the piece was written, as free text (e.g. '2024-03-01').")),
		mcp.WithBoolean("is_precise_time", mcp.Description("Whether created_time includes a time of day."), mcp.DefaultBool(false)),
		mcp.WithString("background", mcp.Description("Circumstances the piece was written in.")),
		mcp.WithString("notes", mcp.Description("Free-form notes.")),
		mcp.WithString("folder_id", mcp.Description("Folder to file the item in. Omit for no folder.")),
		mcp.WithString("tag_ids", mcp.Description("Tag ids as a comma-separated string (e.g., 't1,t2') or an array of strings. Duplicates are ignored.")),
	}
}

func RegisterListWritingItemsTool(s *server.MCPServer, db *sql.DB) {
	tool := mcp.NewTool("list_writing_items",
		mcp.WithDescription("Lists writing items, newest first, each with its tags."),
		mcp.WithString("type_id", mcp.Description("Only items of this content type.")),
		mcp.WithString("folder_id", mcp.Description("Only items in this folder.")),
		mcp.WithBoolean("unfiled", mcp.Description("Only items without a folder. Overrides folder_id."), mcp.DefaultBool(false)),
	)
	s.AddTool(tool, listWritingItemsHandler(db))
}

func listWritingItemsHandler(db *sql.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := writing.ListFilter{
			TypeID:   stringOrEmpty(request, "type_id"),
			FolderID: stringOrEmpty(request, "folder_id"),
			Unfiled:  optionalBool(request, "unfiled"),
		}
		items, err := writing.ListWritingItems(ctx, db, filter)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list writing items: %v", err)), nil
		}
		return jsonResult(items, "writing items")
	}
}

func RegisterGetWritingItemTool(s *server.MCPServer, db *sql.DB) {
	tool := mcp.NewTool("get_writing_item",
		mcp.WithDescription("Retrieves one writing item with its tags. Returns null when the id is unknown."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Writing item id.")),
	)
	s.AddTool(tool, getWritingItemHandler(db))
}

func getWritingItemHandler(db *sql.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := requiredString(request, "id")
		if !ok {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}

		item, err := writing.GetWritingItem(ctx, db, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get writing item '%s': %v", id, err)), nil
		}
		if item == nil {
			return mcp.NewToolResultText("null"), nil
		}
		return jsonResult(item, "writing item")
	}
}

func RegisterCreateWritingItemTool(s *server.MCPServer, db *sql.DB) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Creates a writing item and links its tags. Returns the new item."),
	}, writingItemOptions("Title of the new item.")...)
	s.AddTool(mcp.NewTool("create_writing_item", opts...), createWritingItemHandler(db))
}

func createWritingItemHandler(db *sql.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input, err := writingItemFromArgs(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		id, err := writing.CreateWritingItem(ctx, db, input)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create writing item: %v", err)), nil
		}

		item, err := writing.GetWritingItem(ctx, db, id)
		if err != nil || item == nil {
			return mcp.NewToolResultError(fmt.Sprintf("Writing item '%s' was created but could not be read back: %v", id, err)), nil
		}
		return jsonResult(item, "writing item")
	}
}

func RegisterUpdateWritingItemTool(s *server.MCPServer, db *sql.DB) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Replaces every field and the tag set of a writing item. Fields left out are cleared."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Writing item id.")),
	}, writingItemOptions("New title.")...)
	s.AddTool(mcp.NewTool("update_writing_item", opts...), updateWritingItemHandler(db))
}

func updateWritingItemHandler(db *sql.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := requiredString(request, "id")
		if !ok {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}

		input, err := writingItemFromArgs(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		matched, err := writing.UpdateWritingItem(ctx, db, id, input)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update writing item '%s': %v", id, err)), nil
		}
		return jsonResult(matchedResult{ID: id, Matched: matched}, "update result")
	}
}

func RegisterDeleteWritingItemTool(s *server.MCPServer, db *sql.DB) {
	tool := mcp.NewTool("delete_writing_item",
		mcp.WithDescription("Deletes a writing item and its tag links. Unknown ids are a no-op."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Writing item id.")),
	)
	s.AddTool(tool, deleteWritingItemHandler(db))
}

func deleteWritingItemHandler(db *sql.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := requiredString(request, "id")
		if !ok {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}

		matched, err := writing.DeleteWritingItem(ctx, db, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete writing item '%s': %v", id, err)), nil
		}
		return jsonResult(matchedResult{ID: id, Matched: matched}, "delete result")
	}
}

func RegisterListContentTypesTool(s *server.MCPServer, db *sql.DB) {
	tool := mcp.NewTool("list_content_types",
		mcp.WithDescription("Lists content types (built-in ones first)."),
	)
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		types, err := writing.ListContentTypes(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list content types: %v", err)), nil
		}
		return jsonResult(types, "content types")
	})
}

// RegisterListTagsTool registers the list_tags tool.
func RegisterListTagsTool(s *server.MCPServer, db *sql.DB) {
	listTagsTool := mcp.NewTool("list_tags",
		mcp.WithDescription("Lists all tags, ordered by name."),
	)
	s.AddTool(listTagsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tags, err := writing.ListTags(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list tags: %v", err)), nil
		}
		if len(tags) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return jsonResult(tags, "tags")
	})
}

func RegisterCreateTagTool(s *server.MCPServer, db *sql.DB) {
	tool := mcp.NewTool("create_tag",
		mcp.WithDescription("Creates a tag. Tag names are unique."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Tag name.")),
		mcp.WithString("color", mcp.Description("Hex color such as #FF9800.")),
	)
	s.AddTool(tool, createTagHandler(db))
}

func createTagHandler(db *sql.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tag, err := writing.CreateTag(ctx, db, writing.NewTag{
			Name:  stringOrEmpty(request, "name"),
			Color: optionalString(request, "color"),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create tag: %v", err)), nil
		}
		return jsonResult(tag, "tag")
	}
}

func RegisterDeleteTagTool(s *server.MCPServer, db *sql.DB) {
	tool := mcp.NewTool("delete_tag",
		mcp.WithDescription("Deletes a tag and removes it from every writing item."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Tag id.")),
	)
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := requiredString(request, "id")
		if !ok {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}
		if err := writing.DeleteTag(ctx, db, id); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete tag '%s': %v", id, err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Tag '%s' deleted.", id)), nil
	})
}

func RegisterListFoldersTool(s *server.MCPServer, db *sql.DB) {
	tool := mcp.NewTool("list_folders",
		mcp.WithDescription("Lists all folders. Nesting is given by parent_id."),
	)
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		folders, err := writing.ListFolders(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list folders: %v", err)), nil
		}
		return jsonResult(folders, "folders")
	})
}

func RegisterCreateFolderTool(s *server.MCPServer, db *sql.DB) {
	tool := mcp.NewTool("create_folder",
		mcp.WithDescription("Creates a folder, optionally inside another one."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Folder name.")),
		mcp.WithString("parent_id", mcp.Description("Parent folder id. Omit for a top-level folder.")),
		mcp.WithNumber("sort_order", mcp.Description("Position among siblings."), mcp.DefaultNumber(0)),
	)
	s.AddTool(tool, createFolderHandler(db))
}

func createFolderHandler(db *sql.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		folder, err := writing.CreateFolder(ctx, db, writing.NewFolder{
			Name:      stringOrEmpty(request, "name"),
			ParentID:  optionalString(request, "parent_id"),
			SortOrder: optionalInt(request, "sort_order"),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create folder: %v", err)), nil
		}
		return jsonResult(folder, "folder")
	}
}

func RegisterDeleteFolderTool(s *server.MCPServer, db *sql.DB) {
	tool := mcp.NewTool("delete_folder",
		mcp.WithDescription("Deletes an empty folder."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Folder id.")),
	)
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := requiredString(request, "id")
		if !ok {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}
		if err := writing.DeleteFolder(ctx, db, id); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete folder '%s': %v", id, err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Folder '%s' deleted.", id)), nil
	})
}
