package library_test

import (
	"testing"

	"github.com/TagStudioDev/TagStudio-sub002/model"
)

func TestAssignTagIsIdempotent(t *testing.T) {
	lib := openTestLibrary(t)
	tagID, err := lib.AddTag(model.Tag{Name: "Starred"})
	if err != nil {
		t.Fatalf("AddTag: %v", err)
	}
	entryID := addEntry(t, lib, "a.txt")

	if err := lib.AssignTag(tagID, entryID); err != nil {
		t.Fatalf("AssignTag: %v", err)
	}
	if err := lib.AssignTag(tagID, entryID); err != nil {
		t.Fatalf("re-AssignTag should be a no-op, got: %v", err)
	}

	got, err := lib.GetTagEntries([]int64{tagID}, []int64{entryID})
	if err != nil {
		t.Fatalf("GetTagEntries: %v", err)
	}
	if len(got[tagID]) != 1 {
		t.Fatalf("entry_tags = %+v, want exactly one row", got)
	}
}

func TestUnassignTagRemovesOnlyThatPair(t *testing.T) {
	lib := openTestLibrary(t)
	starred, err := lib.AddTag(model.Tag{Name: "Starred"})
	if err != nil {
		t.Fatalf("AddTag starred: %v", err)
	}
	archived, err := lib.AddTag(model.Tag{Name: "Archived"})
	if err != nil {
		t.Fatalf("AddTag archived: %v", err)
	}
	entryID := addEntry(t, lib, "a.txt")

	if err := lib.AssignTag(starred, entryID); err != nil {
		t.Fatalf("AssignTag starred: %v", err)
	}
	if err := lib.AssignTag(archived, entryID); err != nil {
		t.Fatalf("AssignTag archived: %v", err)
	}

	if err := lib.UnassignTag(starred, entryID); err != nil {
		t.Fatalf("UnassignTag: %v", err)
	}

	got, err := lib.GetTagEntries([]int64{starred, archived}, []int64{entryID})
	if err != nil {
		t.Fatalf("GetTagEntries: %v", err)
	}
	if len(got[starred]) != 0 {
		t.Fatalf("starred should have been unassigned, got %+v", got)
	}
	if len(got[archived]) != 1 {
		t.Fatalf("archived should remain assigned, got %+v", got)
	}
}

func TestRemoveTagCascadesEntryTags(t *testing.T) {
	lib := openTestLibrary(t)
	tagID, err := lib.AddTag(model.Tag{Name: "Temp"})
	if err != nil {
		t.Fatalf("AddTag: %v", err)
	}
	entryID := addEntry(t, lib, "a.txt")
	if err := lib.AssignTag(tagID, entryID); err != nil {
		t.Fatalf("AssignTag: %v", err)
	}

	if err := lib.RemoveTag(tagID); err != nil {
		t.Fatalf("RemoveTag: %v", err)
	}

	got, err := lib.GetTagEntries([]int64{tagID}, []int64{entryID})
	if err != nil {
		t.Fatalf("GetTagEntries: %v", err)
	}
	if len(got[tagID]) != 0 {
		t.Fatalf("entry_tags row survived tag removal: %+v", got)
	}
}
