// Package liberr defines the stable, user-surfaceable error kinds returned
// by the library engine. Callers are expected to use errors.As against the
// concrete types below rather than matching on error strings.
package liberr

import "fmt"

// OpenReason narrows why Open failed.
type OpenReason int

const (
	NotReadable OpenReason = iota
	IncompatibleVersion
	Corrupt
)

func (r OpenReason) String() string {
	switch r {
	case NotReadable:
		return "not_readable"
	case IncompatibleVersion:
		return "incompatible_version"
	case Corrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// OpenFailure is returned by storage/sqlite.Open and library.Open when the
// library directory cannot be opened for use.
type OpenFailure struct {
	Reason OpenReason
	Detail string
}

func (e *OpenFailure) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("open failure: %s", e.Reason)
	}
	return fmt.Sprintf("open failure: %s: %s", e.Reason, e.Detail)
}

// ParseError is returned by the query tokenizer/parser. Start and End are
// byte offsets into the original query text.
type ParseError struct {
	Start, End int
	Message    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("query parse error at [%d:%d]: %s", e.Start, e.End, e.Message)
}

// NotImplemented is returned for recognized-but-unsupported features, such
// as constraint properties or the unimplemented Special values.
type NotImplemented struct {
	Feature string
}

func (e *NotImplemented) Error() string {
	return fmt.Sprintf("not implemented: %s", e.Feature)
}

// ConflictingPath is returned by Library.AddEntries for a path whose row
// could not be inserted, e.g. one already taken by another entry in the
// same folder. Library.UpdateEntryPath reports a taken path as ok=false
// with a nil error instead.
type ConflictingPath struct {
	NewPath string
}

func (e *ConflictingPath) Error() string {
	return fmt.Sprintf("path already in use: %s", e.NewPath)
}

// ReservedNamespace is returned when a caller attempts to mutate a
// system-owned namespace (one whose slug carries the reserved prefix).
type ReservedNamespace struct {
	Slug string
}

func (e *ReservedNamespace) Error() string {
	return fmt.Sprintf("namespace %q is reserved", e.Slug)
}

// NotFound is returned when a lookup by id fails. Kind names the entity
// type, e.g. "tag", "entry", "namespace".
type NotFound struct {
	Kind string
	ID   int64
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// IOFailure wraps a filesystem or external-process error, e.g. from the
// refresh scanner or the thumbnail cache.
type IOFailure struct {
	Path  string
	Cause error
}

func (e *IOFailure) Error() string {
	return fmt.Sprintf("io failure at %s: %v", e.Path, e.Cause)
}

func (e *IOFailure) Unwrap() error {
	return e.Cause
}
