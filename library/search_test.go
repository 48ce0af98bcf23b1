package library_test

import (
	"testing"

	"github.com/TagStudioDev/TagStudio-sub002/model"
)

func TestSearchLibraryPaginatesAndReportsExactTotal(t *testing.T) {
	lib := openTestLibrary(t)
	for _, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt", "e.txt"} {
		addEntry(t, lib, name)
	}

	result, err := lib.SearchLibrary(model.FilterState{PageSize: 2, Page: 0})
	if err != nil {
		t.Fatalf("SearchLibrary page 0: %v", err)
	}
	if result.TotalCount != 5 {
		t.Fatalf("TotalCount = %d, want 5", result.TotalCount)
	}
	if len(result.Items) != 2 || result.Items[0].Path != "a.txt" || result.Items[1].Path != "b.txt" {
		t.Fatalf("page 0 items = %+v, want [a.txt b.txt]", result.Items)
	}

	result, err = lib.SearchLibrary(model.FilterState{PageSize: 2, Page: 2})
	if err != nil {
		t.Fatalf("SearchLibrary page 2: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Path != "e.txt" {
		t.Fatalf("page 2 items = %+v, want [e.txt]", result.Items)
	}
}

func TestSearchLibraryOrdersDescendingWhenRequested(t *testing.T) {
	lib := openTestLibrary(t)
	addEntry(t, lib, "a.txt")
	addEntry(t, lib, "b.txt")
	addEntry(t, lib, "c.txt")

	result, err := lib.SearchLibrary(model.FilterState{SortKey: model.SortPath, SortDir: model.Desc})
	if err != nil {
		t.Fatalf("SearchLibrary: %v", err)
	}
	if len(result.Items) != 3 || result.Items[0].Path != "c.txt" || result.Items[2].Path != "a.txt" {
		t.Fatalf("items = %+v, want descending c,b,a", result.Items)
	}
}

func TestSearchLibraryFiltersByTagQuery(t *testing.T) {
	lib := openTestLibrary(t)
	tagID, err := lib.AddTag(model.Tag{Name: "Starred"})
	if err != nil {
		t.Fatalf("AddTag: %v", err)
	}
	tagged := addEntry(t, lib, "tagged.txt")
	addEntry(t, lib, "untagged.txt")
	if err := lib.AssignTag(tagID, tagged); err != nil {
		t.Fatalf("AssignTag: %v", err)
	}

	result, err := lib.SearchLibrary(model.FilterState{Query: "starred"})
	if err != nil {
		t.Fatalf("SearchLibrary: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].ID != tagged {
		t.Fatalf("items = %+v, want only the tagged entry", result.Items)
	}
}
