package refresh

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/TagStudioDev/TagStudio-sub002/liberr"
	"github.com/TagStudioDev/TagStudio-sub002/library"
	"github.com/TagStudioDev/TagStudio-sub002/logger"
	"github.com/TagStudioDev/TagStudio-sub002/model"
	"github.com/TagStudioDev/TagStudio-sub002/pathutil"
)

// saveBatchSize is the number of new paths inserted per transaction.
const saveBatchSize = 200

// Tracker holds one scan's worth of reconciliation state: the paths
// expected to exist (from storage), the ones actually found, and the
// diff between them. A Tracker is single-use: call Scan once, then any
// combination of Relink, SaveNewFiles, and RemoveUnlinkedEntries.
type Tracker struct {
	lib      *library.Library
	primary  Scanner
	fallback Scanner

	expectedByID map[int64]string
	newPaths     []string
	missing      map[string]int64 // path -> entry id
}

// NewTracker builds a Tracker that prefers primary, falling back to
// fallback transparently whenever primary is unavailable or errors.
func NewTracker(lib *library.Library, primary, fallback Scanner) *Tracker {
	return &Tracker{lib: lib, primary: primary, fallback: fallback}
}

// Scan loads expected paths from storage, then scans root on disk after
// writing ignore's patterns to a temporary file (deleted on every exit
// path), computing new and missing path sets. progress, if non-nil,
// receives a running count of lines scanned so far; Scan closes it
// before returning.
func (t *Tracker) Scan(ctx context.Context, root string, ignore *pathutil.CompiledIgnore, progress chan<- int) error {
	if progress != nil {
		defer close(progress)
	}

	t.expectedByID = make(map[int64]string)
	expected := make(map[string]bool)
	err := t.lib.AllPaths(func(pe library.PathEntry) error {
		t.expectedByID[pe.ID] = pe.Path
		expected[pe.Path] = true
		return nil
	})
	if err != nil {
		return err
	}

	patternFile, err := writePatternFile(ignore)
	if err != nil {
		return err
	}
	defer os.Remove(patternFile)

	scanner := t.primary
	if scanner == nil || !scanner.Available() {
		logger.Warnf("refresh: primary scanner unavailable, falling back")
		scanner = t.fallback
	}

	rc, err := scanner.Scan(ctx, root, patternFile)
	if err != nil {
		logger.Warnf("refresh: scanner %T failed (%v), falling back", scanner, err)
		rc, err = t.fallback.Scan(ctx, root, patternFile)
		if err != nil {
			return &liberr.IOFailure{Path: root, Cause: err}
		}
	}
	defer rc.Close()

	found := make(map[string]bool)
	count := 0
	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		found[pathutil.ToPosix(line)] = true
		count++
		if progress != nil {
			select {
			case progress <- count:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	if err := sc.Err(); err != nil {
		return &liberr.IOFailure{Path: root, Cause: err}
	}

	t.newPaths = nil
	for p := range found {
		if !expected[p] {
			t.newPaths = append(t.newPaths, p)
		}
	}

	t.missing = make(map[string]int64)
	for id, p := range t.expectedByID {
		if !found[p] {
			t.missing[p] = id
		}
	}

	return nil
}

// NewPaths returns the paths found on disk but not yet in storage.
func (t *Tracker) NewPaths() []string {
	out := make([]string, len(t.newPaths))
	copy(out, t.newPaths)
	return out
}

// MissingCount reports how many stored paths were not found on disk.
func (t *Tracker) MissingCount() int {
	return len(t.missing)
}

// Relink matches each missing path against the new-path set by basename.
// An unambiguous match (exactly one new path shares the basename) is
// relinked via UpdateEntryPath; on success the old path leaves missing
// and the matched new path leaves the new-path candidate set. Ambiguous
// matches (more than one candidate) are left untouched for manual
// resolution.
func (t *Tracker) Relink() error {
	byBasename := make(map[string][]string, len(t.newPaths))
	for _, p := range t.newPaths {
		b := filepath.Base(p)
		byBasename[b] = append(byBasename[b], p)
	}

	relinkedNewPaths := make(map[string]bool)
	for missingPath, id := range t.missing {
		candidates := byBasename[filepath.Base(missingPath)]
		if len(candidates) != 1 {
			continue
		}
		candidate := candidates[0]
		if relinkedNewPaths[candidate] {
			continue
		}
		ok, err := t.lib.UpdateEntryPath(id, candidate)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		delete(t.missing, missingPath)
		relinkedNewPaths[candidate] = true
	}

	if len(relinkedNewPaths) > 0 {
		var filtered []string
		for _, p := range t.newPaths {
			if !relinkedNewPaths[p] {
				filtered = append(filtered, p)
			}
		}
		t.newPaths = filtered
	}
	return nil
}

// SaveNewFiles inserts the remaining new paths into folderID in batches
// of saveBatchSize, one transaction per batch. progress, if non-nil,
// receives the running count of paths saved so far; it is closed before
// returning.
func (t *Tracker) SaveNewFiles(folderID int64, progress chan<- int) error {
	if progress != nil {
		defer close(progress)
	}

	saved := 0
	for start := 0; start < len(t.newPaths); start += saveBatchSize {
		end := start + saveBatchSize
		if end > len(t.newPaths) {
			end = len(t.newPaths)
		}
		batch := make([]model.Entry, end-start)
		for i, p := range t.newPaths[start:end] {
			batch[i] = model.Entry{Path: p}
		}
		_, errs := t.lib.AddEntries(folderID, batch)
		for i, err := range errs {
			if err != nil {
				return fmt.Errorf("refresh: saving %q: %w", batch[i].Path, err)
			}
		}
		saved += len(batch)
		if progress != nil {
			progress <- saved
		}
	}
	return nil
}

// RemoveUnlinkedEntries deletes every entry still in the missing set
// after Relink, then clears it.
func (t *Tracker) RemoveUnlinkedEntries() error {
	if len(t.missing) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(t.missing))
	for _, id := range t.missing {
		ids = append(ids, id)
	}
	if err := t.lib.RemoveEntries(ids); err != nil {
		return err
	}
	t.missing = make(map[string]int64)
	return nil
}

func writePatternFile(ignore *pathutil.CompiledIgnore) (string, error) {
	f, err := os.CreateTemp("", "tagstudio-ignore-*")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.WriteString(ignore.Render()); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
