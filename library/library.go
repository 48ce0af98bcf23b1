// Package library is the top-level façade over a TagStudio-style metadata
// library: entries, tags, search, and grouping, all backed by a single
// sqlite database.
package library

import (
	"database/sql"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/TagStudioDev/TagStudio-sub002/model"
	"github.com/TagStudioDev/TagStudio-sub002/query"
	"github.com/TagStudioDev/TagStudio-sub002/storage/sqlite"
	"github.com/TagStudioDev/TagStudio-sub002/tags"
)

// defaultFieldTypes is the field-type catalog seeded into every new (or
// reopened) library, mirroring the source's built-in field set: a handful
// of text fields, a datetime field, and the two Tags-typed fields realized
// as direct entry-tag joins rather than rows in a value table.
var defaultFieldTypes = []model.FieldType{
	{Key: "TITLE", DisplayName: "Title", Type: model.TextLine, IsDefault: true, Position: 0},
	{Key: "AUTHOR", DisplayName: "Author", Type: model.TextLine, IsDefault: true, Position: 1},
	{Key: "ARTIST", DisplayName: "Artist", Type: model.TextLine, IsDefault: true, Position: 2},
	{Key: "URL", DisplayName: "URL", Type: model.TextLine, IsDefault: true, Position: 3},
	{Key: "SOURCE", DisplayName: "Source", Type: model.TextLine, IsDefault: true, Position: 4},
	{Key: "DESCRIPTION", DisplayName: "Description", Type: model.TextBox, IsDefault: true, Position: 5},
	{Key: "NOTES", DisplayName: "Notes", Type: model.TextBox, IsDefault: true, Position: 6},
	{Key: "DATE_PUBLISHED", DisplayName: "Date Published", Type: model.Datetime, IsDefault: true, Position: 7},
	{Key: "TAGS", DisplayName: "Tags", Type: model.Tags, IsDefault: true, Position: 8},
	{Key: "TAGS_META", DisplayName: "Meta Tags", Type: model.Tags, IsDefault: true, Position: 9},
}

// Library owns the database connection for one opened library directory.
// Every exported method is self-contained: reads use a single connection,
// writes open exactly one transaction.
type Library struct {
	db           *sql.DB
	Tags         *tags.Resolver
	compiler     *query.Compiler
	rootDir      string
	rootFolderID int64
}

// Open opens (creating if necessary) the library rooted at dir, seeding
// its single root folder row on first open.
func Open(dir string) (*Library, error) {
	db, err := sqlite.Open(dir)
	if err != nil {
		return nil, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		db.Close()
		return nil, err
	}
	folderID, err := ensureRootFolder(db, absDir)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := ensureFieldTypeCatalog(db); err != nil {
		db.Close()
		return nil, err
	}
	resolver := tags.New(db)
	return &Library{
		db:           db,
		Tags:         resolver,
		compiler:     query.NewCompiler(resolver),
		rootDir:      dir,
		rootFolderID: folderID,
	}, nil
}

// ensureRootFolder inserts the root folder row for absDir if one does not
// already exist, returning its id either way.
func ensureRootFolder(db *sql.DB, absDir string) (int64, error) {
	var id int64
	err := db.QueryRow(`SELECT id FROM folders WHERE path = ?`, absDir).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}
	res, err := db.Exec(`INSERT INTO folders (path, uuid) VALUES (?, ?)`, absDir, uuid.NewString())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ensureFieldTypeCatalog seeds the default field-type catalog, skipping
// any key already present (a reopened library, or one the caller already
// extended with custom field types).
func ensureFieldTypeCatalog(db *sql.DB) error {
	stmt, err := db.Prepare(
		`INSERT OR IGNORE INTO value_types (key, display_name, type, is_default, position) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ft := range defaultFieldTypes {
		if _, err := stmt.Exec(ft.Key, ft.DisplayName, int(ft.Type), ft.IsDefault, ft.Position); err != nil {
			return err
		}
	}
	return nil
}

// RootFolderID returns the id of this library's single root folder row,
// the value every Entry's folder_id refers to.
func (l *Library) RootFolderID() int64 {
	return l.rootFolderID
}

// Close releases the underlying database connection.
func (l *Library) Close() error {
	return l.db.Close()
}

// RootDir returns the directory this library was opened from.
func (l *Library) RootDir() string {
	return l.rootDir
}
