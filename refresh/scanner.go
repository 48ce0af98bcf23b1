// Package refresh reconciles a library's stored entries against the
// filesystem: finding new files, detecting missing ones, relinking moved
// files by basename, and applying the diff in batched transactions.
package refresh

import (
	"context"
	"io"
)

// Scanner discovers files under a library root, honoring an ignore
// pattern file. Two implementations exist: RipgrepScanner shells out to
// an external ripgrep-compatible binary, WalkScanner falls back to an
// in-process filepath.WalkDir.
type Scanner interface {
	// Available reports whether this scanner can run in the current
	// environment, e.g. whether its external binary is on PATH.
	Available() bool
	// Scan returns a stream of newline-delimited, library-relative
	// POSIX paths found under root. patternFile holds gitignore-style
	// patterns already compiled and rendered to disk by the caller.
	Scan(ctx context.Context, root, patternFile string) (io.ReadCloser, error)
}
