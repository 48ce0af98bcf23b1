package tags

import (
	"database/sql"

	"github.com/TagStudioDev/TagStudio-sub002/liberr"
	"github.com/TagStudioDev/TagStudio-sub002/model"
)

// Tag loads a single tag by id, including its parent ids and alias names.
func (r *Resolver) Tag(id int64) (model.Tag, error) {
	var t model.Tag
	var shorthand, colorNamespace, colorSlug, iconSlug sql.NullString
	err := r.db.QueryRow(
		`SELECT id, name, shorthand, is_category, color_namespace, color_slug, icon_slug
		 FROM tags WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &shorthand, &t.IsCategory, &colorNamespace, &colorSlug, &iconSlug)
	if err == sql.ErrNoRows {
		return model.Tag{}, &liberr.NotFound{Kind: "tag", ID: id}
	}
	if err != nil {
		return model.Tag{}, err
	}
	t.Shorthand = shorthand.String
	t.IconSlug = iconSlug.String
	if colorNamespace.Valid && colorSlug.Valid {
		t.ColorGroup = &model.ColorGroupRef{Namespace: colorNamespace.String, Slug: colorSlug.String}
	}

	parentRows, err := r.db.Query(`SELECT parent_id FROM tag_parents WHERE child_id = ? ORDER BY parent_id`, id)
	if err != nil {
		return model.Tag{}, err
	}
	defer parentRows.Close()
	for parentRows.Next() {
		var p int64
		if err := parentRows.Scan(&p); err != nil {
			return model.Tag{}, err
		}
		t.ParentIDs = append(t.ParentIDs, p)
	}
	if err := parentRows.Err(); err != nil {
		return model.Tag{}, err
	}

	aliasRows, err := r.db.Query(`SELECT name FROM tag_aliases WHERE tag_id = ? ORDER BY id`, id)
	if err != nil {
		return model.Tag{}, err
	}
	defer aliasRows.Close()
	for aliasRows.Next() {
		var name string
		if err := aliasRows.Scan(&name); err != nil {
			return model.Tag{}, err
		}
		t.AliasNames = append(t.AliasNames, name)
	}
	return t, aliasRows.Err()
}

// AllTagIDs returns every tag id in ascending order.
func (r *Resolver) AllTagIDs() ([]int64, error) {
	rows, err := r.db.Query(`SELECT id FROM tags ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ParentMap returns the full child -> parent ids adjacency for the tag
// graph, suitable for ClosureInMemory.
func (r *Resolver) ParentMap() (map[int64][]int64, error) {
	rows, err := r.db.Query(`SELECT child_id, parent_id FROM tag_parents`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]int64)
	for rows.Next() {
		var child, parent int64
		if err := rows.Scan(&child, &parent); err != nil {
			return nil, err
		}
		out[child] = append(out[child], parent)
	}
	return out, rows.Err()
}
