// Package model defines the core data structures of the library engine.
//
// Every type here is a plain struct with no storage-layer dependency;
// storage/sqlite maps these to and from rows. Identifiers are stable
// 64-bit integers assigned on first insert and never reused.
package model

import "time"

// Reserved id range for meta tags (archived, favorite). Ordinary tags are
// assigned from the database's normal autoincrement sequence, which never
// reaches this range in practice.
const (
	ReservedTagIDStart = 900000000000
	ReservedTagIDEnd   = 900000000099

	ArchivedTagID = ReservedTagIDStart
	FavoriteTagID = ReservedTagIDStart + 1
)

// ReservedNamespacePrefix marks a namespace slug as system-owned. Slugs
// carrying this prefix cannot be renamed or deleted.
const ReservedNamespacePrefix = "tagstudio-"

// Folder is a library root. One row exists per opened library.
type Folder struct {
	ID           int64
	AbsolutePath string
	UUID         string
}

// Entry is one row per discovered file.
type Entry struct {
	ID           int64
	FolderID     int64
	Path         string // POSIX-form, relative to the folder root
	Suffix       string // lower-cased extension, no leading dot
	DateAdded    time.Time
	DateCreated  time.Time
	DateModified time.Time
}

// Tag is a named label, part of a DAG of parent/child edges.
type Tag struct {
	ID           int64
	Name         string
	Shorthand    string
	IsCategory   bool
	ColorGroup   *ColorGroupRef
	IconSlug     string
	ParentIDs    []int64
	AliasNames   []string
}

// ColorGroupRef identifies a TagColorGroup by its composite key.
type ColorGroupRef struct {
	Namespace string
	Slug      string
}

// TagAlias is an alternate name matched case-insensitively during query
// resolution.
type TagAlias struct {
	ID    int64
	TagID int64
	Name  string
}

// Namespace groups TagColorGroups. Slugs beginning with
// ReservedNamespacePrefix are immutable/system-owned.
type Namespace struct {
	Slug string
	Name string
}

func (n Namespace) IsReserved() bool {
	return len(n.Slug) >= len(ReservedNamespacePrefix) && n.Slug[:len(ReservedNamespacePrefix)] == ReservedNamespacePrefix
}

// TagColorGroup is a named color swatch, keyed by (namespace, slug).
type TagColorGroup struct {
	Namespace    string
	Slug         string
	Name         string
	Primary      string
	Secondary    string
	ColorBorder  bool
}

// FieldValueType enumerates the kinds of typed field a FieldType can hold.
type FieldValueType int

const (
	TextLine FieldValueType = iota
	TextBox
	Datetime
	Boolean
	Tags
)

// FieldType is a catalog entry describing one kind of attachable field.
// The catalog is seeded at library creation and may grow at runtime.
type FieldType struct {
	Key         string
	DisplayName string
	Type        FieldValueType
	IsDefault   bool
	Position    int
}

// FieldInstance is one field attached to an Entry. Its concrete value
// lives in exactly one of the per-type value tables; a Tags-typed field
// has no row here at all (it is realized as direct Entry-Tag joins).
type FieldInstance struct {
	ID       int64
	EntryID  int64
	TypeKey  string
	Position int // disambiguates repeated instances of the same field type

	TextValue     *string
	DatetimeValue *time.Time
	BoolValue     *bool
}
