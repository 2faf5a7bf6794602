package db

// Table DDL for schema version 1. Referenced tables come before the tables
// that point at them.
const (
	createVersions = `
CREATE TABLE IF NOT EXISTS inktrace_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at TEXT NOT NULL
);`

	createContentTypes = `
CREATE TABLE IF NOT EXISTS content_types (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    icon TEXT,
    color TEXT,
    is_built_in INTEGER NOT NULL DEFAULT 0,
    sort_order INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);`

	createFolders = `
CREATE TABLE IF NOT EXISTS folders (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    parent_id TEXT,
    sort_order INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    FOREIGN KEY (parent_id) REFERENCES folders(id)
);`

	createTags = `
CREATE TABLE IF NOT EXISTS tags (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    color TEXT,
    usage_count INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);`

	createWritingItems = `
CREATE TABLE IF NOT EXISTS writing_items (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    type_id TEXT NOT NULL,
    content TEXT,
    created_time TEXT,
    is_precise_time INTEGER NOT NULL DEFAULT 0,
    background TEXT,
    notes TEXT,
    folder_id TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (type_id) REFERENCES content_types(id),
    FOREIGN KEY (folder_id) REFERENCES folders(id)
);`

	createWritingItemTags = `
CREATE TABLE IF NOT EXISTS writing_item_tags (
    writing_item_id TEXT NOT NULL,
    tag_id TEXT NOT NULL,
    PRIMARY KEY (writing_item_id, tag_id),
    FOREIGN KEY (writing_item_id) REFERENCES writing_items(id) ON DELETE CASCADE,
    FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE
);`
)

// Index DDL for the common lookups.
const (
	idxWritingItemsCreated = `CREATE INDEX IF NOT EXISTS idx_writing_items_created ON writing_items(created_at);`
	idxWritingItemsType    = `CREATE INDEX IF NOT EXISTS idx_writing_items_type ON writing_items(type_id);`
	idxWritingItemsFolder  = `CREATE INDEX IF NOT EXISTS idx_writing_items_folder ON writing_items(folder_id);`
	idxWritingItemTagsTag  = `CREATE INDEX IF NOT EXISTS idx_writing_item_tags_tag ON writing_item_tags(tag_id);`
)

// DataTables names the five tables that hold application data, in creation
// order.
var DataTables = []string{
	"content_types",
	"folders",
	"tags",
	"writing_items",
	"writing_item_tags",
}

// schemaV1 lists every statement of schema version 1 in execution order.
var schemaV1 = []string{
	createVersions,
	createContentTypes,
	createFolders,
	createTags,
	createWritingItems,
	createWritingItemTags,
	idxWritingItemsCreated,
	idxWritingItemsType,
	idxWritingItemsFolder,
	idxWritingItemTagsTag,
}
