package tags

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/TagStudioDev/TagStudio-sub002/model"
	"github.com/TagStudioDev/TagStudio-sub002/storage/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAddTagAndLookup(t *testing.T) {
	db := openTestDB(t)
	r := New(db)

	id, err := r.AddTag(model.Tag{Name: "Landscape", Shorthand: "land", AliasNames: []string{"Scenery"}})
	if err != nil {
		t.Fatalf("AddTag: %v", err)
	}

	got, err := r.Tag(id)
	if err != nil {
		t.Fatalf("Tag: %v", err)
	}
	if got.Name != "Landscape" || got.Shorthand != "land" {
		t.Fatalf("got %+v", got)
	}
	if len(got.AliasNames) != 1 || got.AliasNames[0] != "Scenery" {
		t.Fatalf("aliases = %v", got.AliasNames)
	}
}

func TestAddTagParentEdge(t *testing.T) {
	db := openTestDB(t)
	r := New(db)

	parentID, err := r.AddTag(model.Tag{Name: "Nature"})
	if err != nil {
		t.Fatalf("AddTag parent: %v", err)
	}
	childID, err := r.AddTag(model.Tag{Name: "Forest", ParentIDs: []int64{parentID}})
	if err != nil {
		t.Fatalf("AddTag child: %v", err)
	}

	closure, err := r.Closure(parentID)
	if err != nil {
		t.Fatalf("Closure: %v", err)
	}
	found := false
	for _, id := range closure {
		if id == childID {
			found = true
		}
	}
	if !found {
		t.Fatalf("closure of parent %d = %v, want to include child %d", parentID, closure, childID)
	}
}

func TestUpdateTagRejectsCycle(t *testing.T) {
	db := openTestDB(t)
	r := New(db)

	a, _ := r.AddTag(model.Tag{Name: "A"})
	b, err := r.AddTag(model.Tag{Name: "B", ParentIDs: []int64{a}})
	if err != nil {
		t.Fatalf("AddTag B: %v", err)
	}

	err = r.UpdateTag(model.Tag{ID: a, Name: "A", ParentIDs: []int64{b}})
	if err == nil {
		t.Fatal("expected UpdateTag to reject a cycle-creating parent edge")
	}
}

func TestUpdateTagReconcilesAliases(t *testing.T) {
	db := openTestDB(t)
	r := New(db)

	id, err := r.AddTag(model.Tag{Name: "Cat", AliasNames: []string{"Feline", "Kitty"}})
	if err != nil {
		t.Fatalf("AddTag: %v", err)
	}

	if err := r.UpdateTag(model.Tag{ID: id, Name: "Cat", AliasNames: []string{"Feline", "Meow"}}); err != nil {
		t.Fatalf("UpdateTag: %v", err)
	}

	got, err := r.Tag(id)
	if err != nil {
		t.Fatalf("Tag: %v", err)
	}
	want := map[string]bool{"Feline": true, "Meow": true}
	if len(got.AliasNames) != len(want) {
		t.Fatalf("aliases = %v, want %v", got.AliasNames, want)
	}
	for _, a := range got.AliasNames {
		if !want[a] {
			t.Fatalf("unexpected alias %q survived reconciliation", a)
		}
	}
}

func TestRemoveTagCascades(t *testing.T) {
	db := openTestDB(t)
	r := New(db)

	id, err := r.AddTag(model.Tag{Name: "Temp", AliasNames: []string{"Tmp"}})
	if err != nil {
		t.Fatalf("AddTag: %v", err)
	}
	if err := r.RemoveTag(id); err != nil {
		t.Fatalf("RemoveTag: %v", err)
	}
	if _, err := r.Tag(id); err == nil {
		t.Fatal("expected Tag lookup to fail after RemoveTag")
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM tag_aliases WHERE tag_id = ?`, id).Scan(&count); err != nil {
		t.Fatalf("query aliases: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected aliases to cascade-delete, found %d remaining", count)
	}
}

func TestRemoveReservedTagRejected(t *testing.T) {
	db := openTestDB(t)
	r := New(db)

	if err := r.RemoveTag(model.ArchivedTagID); err == nil {
		t.Fatal("expected removing the reserved Archived tag to fail")
	}
}
