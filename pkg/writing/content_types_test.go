package writing

import (
	"context"
	"errors"
	"testing"

	"github.com/inktrace/inktrace/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListContentTypes_BuiltInsFirst(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	custom, err := CreateContentType(ctx, conn, NewContentType{Name: "Haiku", Color: strPtr("#000000"), SortOrder: 10})
	require.NoError(t, err)
	assert.False(t, custom.IsBuiltIn)

	types, err := ListContentTypes(ctx, conn)
	require.NoError(t, err)
	require.Len(t, types, len(db.BuiltInContentTypes)+1)

	for i, builtIn := range db.BuiltInContentTypes {
		assert.Equal(t, builtIn.ID, types[i].ID)
		assert.Equal(t, builtIn.Name, types[i].Name)
		assert.True(t, types[i].IsBuiltIn)
		assert.Equal(t, i, types[i].SortOrder)
	}
	assert.Equal(t, custom.ID, types[len(types)-1].ID)
}

func TestGetContentType(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	poem, err := GetContentType(ctx, conn, "poem-type")
	require.NoError(t, err)
	assert.Equal(t, "Poem", poem.Name)
	require.NotNil(t, poem.Icon)
	assert.Equal(t, "poem", *poem.Icon)
	assert.Equal(t, "#4CAF50", *poem.Color)

	_, err = GetContentType(ctx, conn, "missing")
	assert.ErrorIs(t, err, ErrContentTypeNotFound)
}

func TestDeleteContentType(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	err := DeleteContentType(ctx, conn, "poem-type")
	assert.True(t, errors.Is(err, ErrBuiltInContentType), "unexpected error: %v", err)

	custom, err := CreateContentType(ctx, conn, NewContentType{Name: "Haiku"})
	require.NoError(t, err)
	itemID, err := CreateWritingItem(ctx, conn, NewWritingItem{Title: "frog", TypeID: custom.ID})
	require.NoError(t, err)

	err = DeleteContentType(ctx, conn, custom.ID)
	assert.True(t, errors.Is(err, ErrContentTypeInUse), "unexpected error: %v", err)

	_, err = DeleteWritingItem(ctx, conn, itemID)
	require.NoError(t, err)
	require.NoError(t, DeleteContentType(ctx, conn, custom.ID))

	assert.ErrorIs(t, DeleteContentType(ctx, conn, custom.ID), ErrContentTypeNotFound)
}

func TestCreateContentType_Validation(t *testing.T) {
	conn := setupTestDB(t)

	_, err := CreateContentType(context.Background(), conn, NewContentType{SortOrder: -1})
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, "name is required", verrs[0].Message)
	assert.Equal(t, "sort_order", verrs[1].Field)
}
