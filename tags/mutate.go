package tags

import (
	"database/sql"
	"fmt"

	"github.com/TagStudioDev/TagStudio-sub002/liberr"
	"github.com/TagStudioDev/TagStudio-sub002/model"
)

// AddTag inserts t and its parent edges and aliases in one transaction,
// returning the assigned id. t.ID is ignored.
func (r *Resolver) AddTag(t model.Tag) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var colorNamespace, colorSlug interface{}
	if t.ColorGroup != nil {
		colorNamespace, colorSlug = t.ColorGroup.Namespace, t.ColorGroup.Slug
	}

	res, err := tx.Exec(
		`INSERT INTO tags (name, shorthand, is_category, color_namespace, color_slug, icon_slug)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.Name, t.Shorthand, t.IsCategory, colorNamespace, colorSlug, t.IconSlug,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := insertParents(tx, id, t.ParentIDs); err != nil {
		return 0, err
	}
	if err := insertAliases(tx, id, t.AliasNames); err != nil {
		return 0, err
	}

	return id, tx.Commit()
}

// UpdateTag replaces t's mutable fields, reconciling its parent edges and
// alias names against what is currently stored. A new parent edge that
// would make the tag graph cyclic is rejected before anything is written.
func (r *Resolver) UpdateTag(t model.Tag) error {
	if t.ID >= model.ReservedTagIDStart && t.ID <= model.ReservedTagIDEnd {
		return &liberr.NotImplemented{Feature: "renaming a reserved meta tag"}
	}

	for _, parentID := range t.ParentIDs {
		cyclic, err := r.WouldCreateCycle(t.ID, parentID)
		if err != nil {
			return err
		}
		if cyclic {
			return fmt.Errorf("tags: assigning parent %d to tag %d would create a cycle", parentID, t.ID)
		}
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var colorNamespace, colorSlug interface{}
	if t.ColorGroup != nil {
		colorNamespace, colorSlug = t.ColorGroup.Namespace, t.ColorGroup.Slug
	}
	res, err := tx.Exec(
		`UPDATE tags SET name = ?, shorthand = ?, is_category = ?, color_namespace = ?, color_slug = ?, icon_slug = ?
		 WHERE id = ?`,
		t.Name, t.Shorthand, t.IsCategory, colorNamespace, colorSlug, t.IconSlug, t.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return &liberr.NotFound{Kind: "tag", ID: t.ID}
	}

	if _, err := tx.Exec(`DELETE FROM tag_parents WHERE child_id = ?`, t.ID); err != nil {
		return err
	}
	if err := insertParents(tx, t.ID, t.ParentIDs); err != nil {
		return err
	}

	if err := reconcileAliases(tx, t.ID, t.AliasNames); err != nil {
		return err
	}

	return tx.Commit()
}

// RemoveTag deletes tag id along with its aliases, parent/child edges, and
// entry associations — all cascade from the tags row via foreign keys, so
// a single delete suffices.
func (r *Resolver) RemoveTag(id int64) error {
	if id >= model.ReservedTagIDStart && id <= model.ReservedTagIDEnd {
		return &liberr.NotImplemented{Feature: "deleting a reserved meta tag"}
	}
	res, err := r.db.Exec(`DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &liberr.NotFound{Kind: "tag", ID: id}
	}
	return nil
}

func insertParents(tx *sql.Tx, childID int64, parentIDs []int64) error {
	for _, parentID := range parentIDs {
		if _, err := tx.Exec(
			`INSERT INTO tag_parents (child_id, parent_id) VALUES (?, ?)`,
			childID, parentID,
		); err != nil {
			return err
		}
	}
	return nil
}

func insertAliases(tx *sql.Tx, tagID int64, names []string) error {
	for _, name := range names {
		if _, err := tx.Exec(
			`INSERT INTO tag_aliases (tag_id, name) VALUES (?, ?)`,
			tagID, name,
		); err != nil {
			return err
		}
	}
	return nil
}

// reconcileAliases diffs the stored alias set for tagID against wanted,
// deleting names no longer present and inserting names that are new.
// Unchanged names are left untouched so their ids are stable.
func reconcileAliases(tx *sql.Tx, tagID int64, wanted []string) error {
	rows, err := tx.Query(`SELECT name FROM tag_aliases WHERE tag_id = ?`, tagID)
	if err != nil {
		return err
	}
	existing := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return err
		}
		existing[name] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	wantedSet := make(map[string]bool, len(wanted))
	for _, name := range wanted {
		wantedSet[name] = true
	}

	for name := range existing {
		if !wantedSet[name] {
			if _, err := tx.Exec(`DELETE FROM tag_aliases WHERE tag_id = ? AND name = ?`, tagID, name); err != nil {
				return err
			}
		}
	}
	for _, name := range wanted {
		if !existing[name] {
			if _, err := tx.Exec(`INSERT INTO tag_aliases (tag_id, name) VALUES (?, ?)`, tagID, name); err != nil {
				return err
			}
		}
	}
	return nil
}
