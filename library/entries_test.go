package library_test

import (
	"testing"
	"time"

	"github.com/TagStudioDev/TagStudio-sub002/library"
	"github.com/TagStudioDev/TagStudio-sub002/model"
)

func TestAddEntriesRejectsDuplicatePathWithoutAbortingBatch(t *testing.T) {
	lib := openTestLibrary(t)
	folder := lib.RootFolderID()

	ids, errs := lib.AddEntries(folder, []model.Entry{
		{Path: "a.txt", DateAdded: time.Now()},
	})
	if errs[0] != nil {
		t.Fatalf("AddEntries first insert: %v", errs[0])
	}
	firstID := ids[0]

	ids, errs = lib.AddEntries(folder, []model.Entry{
		{Path: "a.txt"},
		{Path: "b.txt"},
	})
	if errs[0] == nil {
		t.Fatalf("want duplicate path error for a.txt, got nil")
	}
	if errs[1] != nil {
		t.Fatalf("AddEntries second row: %v", errs[1])
	}
	if ids[1] == 0 {
		t.Fatalf("b.txt should have been inserted despite a.txt's conflict")
	}

	e, err := lib.Entry(firstID)
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	if e.Path != "a.txt" {
		t.Fatalf("Path = %q, want a.txt", e.Path)
	}
}

func TestRemoveEntriesCascadesTagAssignments(t *testing.T) {
	lib := openTestLibrary(t)

	tagID, err := lib.AddTag(model.Tag{Name: "Keep"})
	if err != nil {
		t.Fatalf("AddTag: %v", err)
	}
	entryID := addEntry(t, lib, "doomed.txt")
	if err := lib.AssignTag(tagID, entryID); err != nil {
		t.Fatalf("AssignTag: %v", err)
	}

	if err := lib.RemoveEntries([]int64{entryID}); err != nil {
		t.Fatalf("RemoveEntries: %v", err)
	}

	assigned, err := lib.GetTagEntries([]int64{tagID}, []int64{entryID})
	if err != nil {
		t.Fatalf("GetTagEntries: %v", err)
	}
	if len(assigned[tagID]) != 0 {
		t.Fatalf("entry_tags row survived entry removal: %+v", assigned)
	}

	if _, err := lib.Entry(entryID); err == nil {
		t.Fatalf("Entry(%d) should fail after removal", entryID)
	}
}

func TestUpdateEntryPathReportsConflictWithoutError(t *testing.T) {
	lib := openTestLibrary(t)

	takenID := addEntry(t, lib, "taken.txt")
	movingID := addEntry(t, lib, "moving.txt")

	ok, err := lib.UpdateEntryPath(movingID, "free.txt")
	if err != nil {
		t.Fatalf("UpdateEntryPath to a free path: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true moving to a free path")
	}

	ok, err = lib.UpdateEntryPath(movingID, "taken.txt")
	if err != nil {
		t.Fatalf("UpdateEntryPath conflict should not error: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false, taken.txt is already used by entry %d", takenID)
	}

	e, err := lib.Entry(movingID)
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	if e.Path != "free.txt" {
		t.Fatalf("Path = %q, want free.txt (conflicting rename must not apply)", e.Path)
	}
}

func TestAllPathsOrdersByID(t *testing.T) {
	lib := openTestLibrary(t)
	first := addEntry(t, lib, "a.txt")
	second := addEntry(t, lib, "b.txt")

	var ids []int64
	var paths []string
	if err := lib.AllPaths(func(pe library.PathEntry) error {
		ids = append(ids, pe.ID)
		paths = append(paths, pe.Path)
		return nil
	}); err != nil {
		t.Fatalf("AllPaths: %v", err)
	}

	if len(ids) != 2 || ids[0] != first || ids[1] != second {
		t.Fatalf("ids = %v, want [%d %d]", ids, first, second)
	}
	if paths[0] != "a.txt" || paths[1] != "b.txt" {
		t.Fatalf("paths = %v, want [a.txt b.txt]", paths)
	}
}
