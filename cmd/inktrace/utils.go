package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/inktrace/inktrace/pkg/writing"
	"github.com/spf13/cobra"
)

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(value string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// optionalString returns the flag value when it was set on the command line.
// An explicitly empty value clears the field.
func optionalString(cmd *cobra.Command, name string) (value *string, set bool) {
	if !cmd.Flags().Changed(name) {
		return nil, false
	}
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return nil, true
	}
	return &v, true
}

func formatTagsList(tags []writing.Tag) string {
	if len(tags) == 0 {
		return "none"
	}

	tagNames := make([]string, len(tags))
	for i, tag := range tags {
		tagNames[i] = tag.Name
	}

	return strings.Join(tagNames, ", ")
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printItem(w io.Writer, item *writing.WritingItemWithTags) {
	fmt.Fprintln(w, "Writing Item Details:")
	fmt.Fprintf(w, "ID:           %s\n", item.ID)
	fmt.Fprintf(w, "Title:        %s\n", item.Title)
	fmt.Fprintf(w, "Type:         %s\n", item.TypeID)
	fmt.Fprintf(w, "Folder:       %s\n", deref(item.FolderID))
	fmt.Fprintf(w, "Tags:         %s\n", formatTagsList(item.Tags))
	fmt.Fprintf(w, "Written:      %s (precise: %t)\n", deref(item.CreatedTime), item.IsPreciseTime)
	fmt.Fprintf(w, "Created At:   %s\n", item.CreatedAt)
	fmt.Fprintf(w, "Updated At:   %s\n", item.UpdatedAt)
	if item.Background != nil {
		fmt.Fprintf(w, "Background:   %s\n", *item.Background)
	}
	if item.Notes != nil {
		fmt.Fprintf(w, "Notes:        %s\n", *item.Notes)
	}
	fmt.Fprintln(w, "\nContent:")
	fmt.Fprintln(w, "------------------------------------------------------------")
	fmt.Fprintln(w, deref(item.Content))
	fmt.Fprintln(w, "------------------------------------------------------------")
}
