// Package pathutil provides path normalisation, ignore-pattern compilation,
// and static media-type classification shared by the scanner and the query
// compiler.
package pathutil

import (
	"path/filepath"
	"runtime"
	"strings"
)

// ToPosix converts a native OS path to the forward-slash form stored on
// Entry.path. It never touches the filesystem.
func ToPosix(p string) string {
	return filepath.ToSlash(p)
}

// Suffix returns the lower-cased extension of p, without the leading dot.
// It matches the invariant that Entry.suffix always tracks Entry.path.
func Suffix(p string) string {
	ext := filepath.Ext(p)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// SamePath compares two stored (already-POSIX) paths using the platform's
// case-sensitivity rule: case-sensitive on POSIX, case-insensitive on
// Windows. The OS is injected so the rule itself is unit-testable
// regardless of the host running the tests.
func SamePath(a, b string) bool {
	return samePathOS(a, b, runtime.GOOS)
}

func samePathOS(a, b, goos string) bool {
	if goos == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}
