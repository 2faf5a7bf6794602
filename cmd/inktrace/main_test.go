package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/inktrace/inktrace/pkg/writing"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	initCmd()
	os.Exit(m.Run())
}

// run executes the CLI once against dbPath and returns stdout.
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	base := []string{"--db", dbPath, "--config-dir", t.TempDir(), "--env-file", filepath.Join(t.TempDir(), "none.env")}
	rootCmd.SetArgs(append(base, args...))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_ItemLifecycle(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.db")

	out, err := run(t, dbPath, "db", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "schema v1")
	assert.Contains(t, out, "journal mode DELETE")

	out, err = run(t, dbPath, "tags", "create", "autumn")
	require.NoError(t, err)
	assert.Contains(t, out, `Tag "autumn" created`)

	out, err = run(t, dbPath, "items", "list", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)

	out, err = run(t, dbPath, "items", "create", "--json", "--title", "Leaves", "--type", "poem-type", "--content", "falling")
	require.NoError(t, err)
	var created writing.WritingItemWithTags
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, "Leaves", created.Title)
	assert.Equal(t, "poem-type", created.TypeID)

	out, err = run(t, dbPath, "items", "get", "--json=false", created.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Title:        Leaves")
	assert.Contains(t, out, "falling")

	out, err = run(t, dbPath, "items", "delete", created.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	_, err = run(t, dbPath, "types", "delete", "poem-type")
	require.Error(t, err)
	assert.ErrorIs(t, err, writing.ErrBuiltInContentType)
}

func newItemFlagsCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addItemFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestApplyItemFlags(t *testing.T) {
	notes := "keep me"
	existing := &writing.WritingItemWithTags{
		WritingItem: writing.WritingItem{
			ID:     "i1",
			Title:  "Old",
			TypeID: "poem-type",
			Notes:  &notes,
		},
		Tags: []writing.Tag{{ID: "t1"}, {ID: "t2"}},
	}

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, in writing.NewWritingItem)
	}{
		{
			name: "no flags keeps stored state",
			args: nil,
			check: func(t *testing.T, in writing.NewWritingItem) {
				assert.Equal(t, "Old", in.Title)
				assert.Equal(t, "poem-type", in.TypeID)
				assert.Equal(t, []string{"t1", "t2"}, in.TagIDs)
				require.NotNil(t, in.Notes)
				assert.Equal(t, "keep me", *in.Notes)
			},
		},
		{
			name: "empty value clears a field",
			args: []string{"--notes", ""},
			check: func(t *testing.T, in writing.NewWritingItem) {
				assert.Nil(t, in.Notes)
			},
		},
		{
			name: "tags replace the whole set",
			args: []string{"--tags", "t3, ,t4", "--title", "New", "--precise"},
			check: func(t *testing.T, in writing.NewWritingItem) {
				assert.Equal(t, []string{"t3", "t4"}, in.TagIDs)
				assert.Equal(t, "New", in.Title)
				assert.True(t, in.IsPreciseTime)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := itemInputFrom(existing)
			applyItemFlags(newItemFlagsCmd(t, tt.args...), &input)
			tt.check(t, input)
		})
	}
}

func TestApplyItemFlags_DefaultType(t *testing.T) {
	input := writing.NewWritingItem{}
	applyItemFlags(newItemFlagsCmd(t, "--title", "x"), &input)
	assert.Equal(t, "note-type", input.TypeID)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{}, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a,, b "))
}
