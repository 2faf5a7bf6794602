package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inktrace/inktrace/pkg/writing"
	"github.com/mark3labs/mcp-go/mcp"
)

// requiredString returns the named argument, or ok=false when it is missing
// or empty.
func requiredString(request mcp.CallToolRequest, name string) (string, bool) {
	v, ok := request.Params.Arguments[name].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// optionalString returns nil when the argument is absent or empty.
func optionalString(request mcp.CallToolRequest, name string) *string {
	v, ok := request.Params.Arguments[name].(string)
	if !ok || v == "" {
		return nil
	}
	return &v
}

func optionalBool(request mcp.CallToolRequest, name string) bool {
	v, _ := request.Params.Arguments[name].(bool)
	return v
}

func optionalInt(request mcp.CallToolRequest, name string) int {
	// JSON numbers arrive as float64.
	v, _ := request.Params.Arguments[name].(float64)
	return int(v)
}

// parseTags splits a comma-separated list, dropping blanks.
func parseTags(tagsStr string) []string {
	tagsList := make([]string, 0)
	for _, tag := range strings.Split(tagsStr, ",") {
		t := strings.TrimSpace(tag)
		if t != "" {
			tagsList = append(tagsList, t)
		}
	}
	return tagsList
}

// tagIDsFromArgs accepts tag_ids as a comma-separated string or a JSON array
// of strings. A missing argument means no tags.
func tagIDsFromArgs(request mcp.CallToolRequest) ([]string, error) {
	switch v := request.Params.Arguments["tag_ids"].(type) {
	case nil:
		return make([]string, 0), nil
	case string:
		return parseTags(v), nil
	case []any:
		tags := make([]string, 0, len(v))
		for i, raw := range v {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("'tag_ids[%d]' must be a string, got %T", i, raw)
			}
			if s = strings.TrimSpace(s); s != "" {
				tags = append(tags, s)
			}
		}
		return tags, nil
	case []string:
		return parseTags(strings.Join(v, ",")), nil
	default:
		return nil, fmt.Errorf("'tag_ids' must be a comma-separated string or an array of strings, got %T", v)
	}
}

// writingItemFromArgs reads the full item state shared by create and update.
func writingItemFromArgs(request mcp.CallToolRequest) (writing.NewWritingItem, error) {
	tagIDs, err := tagIDsFromArgs(request)
	if err != nil {
		return writing.NewWritingItem{}, err
	}
	return writing.NewWritingItem{
		Title:         stringOrEmpty(request, "title"),
		TypeID:        stringOrEmpty(request, "type_id"),
		Content:       optionalString(request, "content"),
		CreatedTime:   optionalString(request, "created_time"),
		IsPreciseTime: optionalBool(request, "is_precise_time"),
		Background:    optionalString(request, "background"),
		Notes:         optionalString(request, "notes"),
		FolderID:      optionalString(request, "folder_id"),
		TagIDs:        tagIDs,
	}, nil
}

func stringOrEmpty(request mcp.CallToolRequest, name string) string {
	v, _ := request.Params.Arguments[name].(string)
	return v
}

// jsonResult serializes v as the tool's text payload.
func jsonResult(v any, what string) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize %s to JSON: %v", what, err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
