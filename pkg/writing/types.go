package writing

// ContentType classifies a writing item's genre (poem, article, ...).
type ContentType struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Icon      *string `json:"icon,omitempty"`
	Color     *string `json:"color,omitempty"`
	IsBuiltIn bool    `json:"is_built_in"`
	SortOrder int     `json:"sort_order"`
	CreatedAt string  `json:"created_at"`
}

// NewContentType is the input for CreateContentType. User-created types are
// never built-in.
type NewContentType struct {
	Name      string  `json:"name" validate:"required"`
	Icon      *string `json:"icon,omitempty"`
	Color     *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	SortOrder int     `json:"sort_order" validate:"gte=0"`
}

// Folder is a node in the folder tree. ParentID is nil for top-level folders.
type Folder struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ParentID  *string `json:"parent_id,omitempty"`
	SortOrder int     `json:"sort_order"`
	CreatedAt string  `json:"created_at"`
}

type NewFolder struct {
	Name      string  `json:"name" validate:"required"`
	ParentID  *string `json:"parent_id,omitempty" validate:"omitnil,min=1"`
	SortOrder int     `json:"sort_order" validate:"gte=0"`
}

// Tag is a label from the shared vocabulary. UsageCount is only refreshed by
// RecountTagUsage.
type Tag struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Color      *string `json:"color,omitempty"`
	UsageCount int     `json:"usage_count"`
	CreatedAt  string  `json:"created_at"`
}

type NewTag struct {
	Name  string  `json:"name" validate:"required"`
	Color *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// WritingItem is a stored note, poem or article.
//
// CreatedTime is the caller's logical date for the piece; IsPreciseTime says
// whether it carries a time of day. CreatedAt and UpdatedAt are storage
// timestamps.
type WritingItem struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	TypeID        string  `json:"type_id"`
	Content       *string `json:"content,omitempty"`
	CreatedTime   *string `json:"created_time,omitempty"`
	IsPreciseTime bool    `json:"is_precise_time"`
	Background    *string `json:"background,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	FolderID      *string `json:"folder_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// WritingItemWithTags is the denormalized view returned by reads.
type WritingItemWithTags struct {
	WritingItem
	Tags []Tag `json:"tags"`
}

// NewWritingItem carries the full desired state of an item. It is the input
// of both CreateWritingItem and UpdateWritingItem; updates are not patches.
type NewWritingItem struct {
	Title         string   `json:"title" validate:"required"`
	TypeID        string   `json:"type_id" validate:"required"`
	Content       *string  `json:"content,omitempty"`
	CreatedTime   *string  `json:"created_time,omitempty"`
	IsPreciseTime bool     `json:"is_precise_time"`
	Background    *string  `json:"background,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	FolderID      *string  `json:"folder_id,omitempty" validate:"omitnil,min=1"`
	TagIDs        []string `json:"tag_ids" validate:"dive,required"`
}
