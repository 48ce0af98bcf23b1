package refresh

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/TagStudioDev/TagStudio-sub002/pathutil"
)

// WalkScanner is the internal fallback used when no external scanner
// binary is available. It walks root with filepath.WalkDir and applies
// the same ignore patterns ripgrep would have been given, compiled via
// pathutil.CompilePatterns.
type WalkScanner struct{}

// Available always reports true: the walker has no external dependency.
func (WalkScanner) Available() bool { return true }

// Scan reads patternFile, compiles it, and walks root, writing every
// non-ignored, non-directory entry's POSIX-form relative path to the returned
// reader, one per line.
func (WalkScanner) Scan(ctx context.Context, root, patternFile string) (io.ReadCloser, error) {
	raw, err := os.ReadFile(patternFile)
	if err != nil {
		return nil, err
	}
	ci, err := pathutil.CompilePatterns(splitLines(string(raw)))
	if err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	go func() {
		w := bufio.NewWriter(pw)
		walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if path == root {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			rel = pathutil.ToPosix(rel)
			if ci.MatchesPath(rel) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if _, err := w.WriteString(rel + "\n"); err != nil {
				return err
			}
			return nil
		})
		if flushErr := w.Flush(); walkErr == nil {
			walkErr = flushErr
		}
		pw.CloseWithError(walkErr)
	}()
	return pr, nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
