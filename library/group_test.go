package library_test

import (
	"testing"

	"github.com/TagStudioDev/TagStudio-sub002/library"
	"github.com/TagStudioDev/TagStudio-sub002/model"
)

func openTestLibrary(t *testing.T) *library.Library {
	t.Helper()
	lib, err := library.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { lib.Close() })
	return lib
}

func addEntry(t *testing.T, lib *library.Library, path string) int64 {
	t.Helper()
	ids, errs := lib.AddEntries(lib.RootFolderID(), []model.Entry{{Path: path}})
	for _, err := range errs {
		if err != nil {
			t.Fatalf("AddEntries(%q): %v", path, err)
		}
	}
	return ids[0]
}

func TestGroupByTagBucketsAndNoTag(t *testing.T) {
	lib := openTestLibrary(t)

	parent, err := lib.AddTag(model.Tag{Name: "Nature"})
	if err != nil {
		t.Fatalf("AddTag parent: %v", err)
	}
	forest, err := lib.AddTag(model.Tag{Name: "Forest", ParentIDs: []int64{parent}})
	if err != nil {
		t.Fatalf("AddTag forest: %v", err)
	}
	desert, err := lib.AddTag(model.Tag{Name: "Desert", ParentIDs: []int64{parent}})
	if err != nil {
		t.Fatalf("AddTag desert: %v", err)
	}

	e1 := addEntry(t, lib, "a.jpg")
	e2 := addEntry(t, lib, "b.jpg")
	e3 := addEntry(t, lib, "c.jpg")

	if err := lib.AssignTag(forest, e1); err != nil {
		t.Fatalf("tag forest: %v", err)
	}
	if err := lib.AssignTag(desert, e2); err != nil {
		t.Fatalf("tag desert: %v", err)
	}

	result, err := lib.Group([]int64{e1, e2, e3}, model.GroupCriterion{ByTag: true, ParentTag: parent})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if result.TotalCount != 3 {
		t.Fatalf("TotalCount = %d, want 3", result.TotalCount)
	}
	if len(result.Groups) != 3 {
		t.Fatalf("Groups = %+v, want 3 buckets (Desert, Forest, No Tag)", result.Groups)
	}

	// Desert sorts before Forest alphabetically; the special "No Tag"
	// bucket comes last.
	if result.Groups[0].EntryIDs[0] != e2 {
		t.Fatalf("first bucket = %+v, want Desert holding e2", result.Groups[0])
	}
	if result.Groups[1].EntryIDs[0] != e1 {
		t.Fatalf("second bucket = %+v, want Forest holding e1", result.Groups[1])
	}
	last := result.Groups[2]
	if !last.IsSpecial || last.SpecialLabel != "No Tag" || len(last.EntryIDs) != 1 || last.EntryIDs[0] != e3 {
		t.Fatalf("last bucket = %+v, want special No Tag holding e3", last)
	}
}

func TestGroupByFiletype(t *testing.T) {
	lib := openTestLibrary(t)

	jpg := addEntry(t, lib, "photo.JPG")
	png := addEntry(t, lib, "art.png")
	none := addEntry(t, lib, "README")

	result, err := lib.Group([]int64{jpg, png, none}, model.GroupCriterion{ByFiletype: true})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if len(result.Groups) != 3 {
		t.Fatalf("Groups = %+v, want 3 buckets", result.Groups)
	}
	// "(no extension)" sorts before "jpg"/"png" as an ordinary key (ASCII
	// '(' precedes letters); it is not flagged special.
	first := result.Groups[0]
	if first.IsSpecial || first.Key != "(no extension)" || first.EntryIDs[0] != none {
		t.Fatalf("first bucket = %+v, want ordinary no-extension bucket holding %d", first, none)
	}
	if result.Groups[1].Key != "jpg" || result.Groups[1].EntryIDs[0] != jpg {
		t.Fatalf("second bucket = %+v, want jpg", result.Groups[1])
	}
	if result.Groups[2].Key != "png" || result.Groups[2].EntryIDs[0] != png {
		t.Fatalf("third bucket = %+v, want png", result.Groups[2])
	}
}
