package writing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkTags(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()
	insertTag(t, conn, "t1", "autumn")
	insertTag(t, conn, "t2", "city")

	id, err := CreateWritingItem(ctx, conn, NewWritingItem{Title: "x", TypeID: "poem-type"})
	require.NoError(t, err)

	tests := []struct {
		name string
		ids  []string
		want int
	}{
		{name: "empty list is a no-op", ids: nil, want: 0},
		{name: "duplicates collapse", ids: []string{"t1", "t2", "t1"}, want: 2},
		{name: "existing pairs are skipped", ids: []string{"t2"}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, LinkTags(ctx, conn, id, tt.ids))
			assert.Equal(t, tt.want, countLinks(t, conn, id))
		})
	}
}

func TestLinkTags_UnknownTag(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	id, err := CreateWritingItem(ctx, conn, NewWritingItem{Title: "x", TypeID: "poem-type"})
	require.NoError(t, err)

	err = LinkTags(ctx, conn, id, []string{"ghost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
	assert.True(t, isForeignKeyViolation(err))
}

func TestRelinkTags_Idempotent(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()
	insertTag(t, conn, "t1", "autumn")
	insertTag(t, conn, "t2", "city")
	insertTag(t, conn, "t3", "sea")

	id, err := CreateWritingItem(ctx, conn, NewWritingItem{Title: "x", TypeID: "poem-type", TagIDs: []string{"t1", "t2"}})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, RelinkTags(ctx, conn, id, []string{"t2", "t3"}))
		tags, err := ListTagsForItem(ctx, conn, id)
		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, "t2", tags[0].ID)
		assert.Equal(t, "t3", tags[1].ID)
	}

	require.NoError(t, RelinkTags(ctx, conn, id, nil))
	assert.Zero(t, countLinks(t, conn, id))
}

func TestTagVocabulary(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	city, err := CreateTag(ctx, conn, NewTag{Name: "city", Color: strPtr("#FF9800")})
	require.NoError(t, err)
	autumn, err := CreateTag(ctx, conn, NewTag{Name: "autumn"})
	require.NoError(t, err)
	assert.Zero(t, city.UsageCount)
	assert.Equal(t, "#FF9800", *city.Color)

	_, err = CreateTag(ctx, conn, NewTag{Name: "city"})
	assert.True(t, errors.Is(err, ErrTagExists), "unexpected error: %v", err)

	_, err = CreateTag(ctx, conn, NewTag{Name: "bad", Color: strPtr("orange")})
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "color", verrs[0].Field)

	tags, err := ListTags(ctx, conn)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "autumn", tags[0].Name)
	assert.Equal(t, "city", tags[1].Name)

	got, err := GetTag(ctx, conn, autumn.ID)
	require.NoError(t, err)
	assert.Equal(t, autumn, got)

	_, err = GetTag(ctx, conn, "missing")
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestDeleteTag_RemovesAssociations(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	tag, err := CreateTag(ctx, conn, NewTag{Name: "autumn"})
	require.NoError(t, err)
	id, err := CreateWritingItem(ctx, conn, NewWritingItem{Title: "x", TypeID: "poem-type", TagIDs: []string{tag.ID}})
	require.NoError(t, err)

	require.NoError(t, DeleteTag(ctx, conn, tag.ID))
	assert.Zero(t, countLinks(t, conn, id))

	item, err := GetWritingItem(ctx, conn, id)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Empty(t, item.Tags)

	assert.ErrorIs(t, DeleteTag(ctx, conn, tag.ID), ErrTagNotFound)
}

func TestRecountTagUsage(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	autumn, err := CreateTag(ctx, conn, NewTag{Name: "autumn"})
	require.NoError(t, err)
	city, err := CreateTag(ctx, conn, NewTag{Name: "city"})
	require.NoError(t, err)

	for _, title := range []string{"one", "two"} {
		_, err := CreateWritingItem(ctx, conn, NewWritingItem{Title: title, TypeID: "poem-type", TagIDs: []string{autumn.ID}})
		require.NoError(t, err)
	}

	before, err := GetTag(ctx, conn, autumn.ID)
	require.NoError(t, err)
	assert.Zero(t, before.UsageCount, "item writes leave usage_count alone")

	require.NoError(t, RecountTagUsage(ctx, conn))

	after, err := GetTag(ctx, conn, autumn.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, after.UsageCount)

	unused, err := GetTag(ctx, conn, city.ID)
	require.NoError(t, err)
	assert.Zero(t, unused.UsageCount)
}
