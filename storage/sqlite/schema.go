package sqlite

// schemaV1 creates the full library schema: folders, tags, tag_aliases,
// entries, and the per-type *_fields tables, plus the namespace and
// color-group tables that group tags for display.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS folders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	path TEXT NOT NULL UNIQUE,
	uuid TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS preferences (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS namespaces (
	slug TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tag_color_groups (
	namespace TEXT NOT NULL,
	slug TEXT NOT NULL,
	name TEXT NOT NULL,
	primary_color TEXT NOT NULL,
	secondary_color TEXT,
	color_border INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (namespace, slug),
	FOREIGN KEY (namespace) REFERENCES namespaces(slug) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS tags (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	shorthand TEXT,
	is_category INTEGER NOT NULL DEFAULT 0,
	color_namespace TEXT,
	color_slug TEXT,
	icon_slug TEXT,
	FOREIGN KEY (color_namespace, color_slug) REFERENCES tag_color_groups(namespace, slug) ON DELETE SET NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_tags_name ON tags(name);

CREATE TABLE IF NOT EXISTS tag_aliases (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	tag_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_tag_aliases_tag_id ON tag_aliases(tag_id);
CREATE INDEX IF NOT EXISTS idx_tag_aliases_name ON tag_aliases(name COLLATE NOCASE);

-- child_id has parent_id as an ancestor ("child has parent").
CREATE TABLE IF NOT EXISTS tag_parents (
	child_id INTEGER NOT NULL,
	parent_id INTEGER NOT NULL,
	PRIMARY KEY (child_id, parent_id),
	FOREIGN KEY (child_id) REFERENCES tags(id) ON DELETE CASCADE,
	FOREIGN KEY (parent_id) REFERENCES tags(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_tag_parents_parent_id ON tag_parents(parent_id);

CREATE TABLE IF NOT EXISTS value_types (
	key TEXT PRIMARY KEY,
	display_name TEXT NOT NULL,
	type INTEGER NOT NULL,
	is_default INTEGER NOT NULL DEFAULT 0,
	position INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	folder_id INTEGER NOT NULL,
	path TEXT NOT NULL,
	suffix TEXT NOT NULL,
	date_added DATETIME NOT NULL,
	date_created DATETIME,
	date_modified DATETIME,
	FOREIGN KEY (folder_id) REFERENCES folders(id),
	UNIQUE (folder_id, path)
);
CREATE INDEX IF NOT EXISTS idx_entries_suffix ON entries(suffix);
CREATE INDEX IF NOT EXISTS idx_entries_path ON entries(path);

CREATE TABLE IF NOT EXISTS entry_tags (
	entry_id INTEGER NOT NULL,
	tag_id INTEGER NOT NULL,
	PRIMARY KEY (entry_id, tag_id),
	FOREIGN KEY (entry_id) REFERENCES entries(id) ON DELETE CASCADE,
	FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_entry_tags_tag_id ON entry_tags(tag_id);

CREATE TABLE IF NOT EXISTS text_fields (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	entry_id INTEGER NOT NULL,
	type_key TEXT NOT NULL,
	position INTEGER NOT NULL DEFAULT 0,
	value TEXT,
	FOREIGN KEY (entry_id) REFERENCES entries(id) ON DELETE CASCADE,
	FOREIGN KEY (type_key) REFERENCES value_types(key)
);
CREATE INDEX IF NOT EXISTS idx_text_fields_entry_id ON text_fields(entry_id);

CREATE TABLE IF NOT EXISTS datetime_fields (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	entry_id INTEGER NOT NULL,
	type_key TEXT NOT NULL,
	position INTEGER NOT NULL DEFAULT 0,
	value DATETIME,
	FOREIGN KEY (entry_id) REFERENCES entries(id) ON DELETE CASCADE,
	FOREIGN KEY (type_key) REFERENCES value_types(key)
);
CREATE INDEX IF NOT EXISTS idx_datetime_fields_entry_id ON datetime_fields(entry_id);

CREATE TABLE IF NOT EXISTS boolean_fields (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	entry_id INTEGER NOT NULL,
	type_key TEXT NOT NULL,
	position INTEGER NOT NULL DEFAULT 0,
	value INTEGER,
	FOREIGN KEY (entry_id) REFERENCES entries(id) ON DELETE CASCADE,
	FOREIGN KEY (type_key) REFERENCES value_types(key)
);
CREATE INDEX IF NOT EXISTS idx_boolean_fields_entry_id ON boolean_fields(entry_id);
`
