package tags

import (
	"github.com/TagStudioDev/TagStudio-sub002/liberr"
	"github.com/TagStudioDev/TagStudio-sub002/model"
)

// AddNamespace inserts a namespace. Reserved slugs are rejected: callers
// cannot create their own tagstudio-prefixed namespaces.
func (r *Resolver) AddNamespace(ns model.Namespace) error {
	if ns.IsReserved() {
		return &liberr.ReservedNamespace{Slug: ns.Slug}
	}
	_, err := r.db.Exec(`INSERT INTO namespaces (slug, name) VALUES (?, ?)`, ns.Slug, ns.Name)
	return err
}

// RemoveNamespace deletes a namespace and, via cascade, every color group
// that belongs to it. Reserved namespaces cannot be removed.
func (r *Resolver) RemoveNamespace(slug string) error {
	ns := model.Namespace{Slug: slug}
	if ns.IsReserved() {
		return &liberr.ReservedNamespace{Slug: slug}
	}
	res, err := r.db.Exec(`DELETE FROM namespaces WHERE slug = ?`, slug)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &liberr.NotFound{Kind: "namespace", ID: 0}
	}
	return nil
}

// Namespaces lists every registered namespace, reserved ones included.
func (r *Resolver) Namespaces() ([]model.Namespace, error) {
	rows, err := r.db.Query(`SELECT slug, name FROM namespaces ORDER BY slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Namespace
	for rows.Next() {
		var ns model.Namespace
		if err := rows.Scan(&ns.Slug, &ns.Name); err != nil {
			return nil, err
		}
		out = append(out, ns)
	}
	return out, rows.Err()
}

// AddColorGroup inserts a color group under an existing, non-reserved
// namespace.
func (r *Resolver) AddColorGroup(g model.TagColorGroup) error {
	ns := model.Namespace{Slug: g.Namespace}
	if ns.IsReserved() {
		return &liberr.ReservedNamespace{Slug: g.Namespace}
	}
	_, err := r.db.Exec(
		`INSERT INTO tag_color_groups (namespace, slug, name, primary_color, secondary_color, color_border)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		g.Namespace, g.Slug, g.Name, g.Primary, g.Secondary, g.ColorBorder,
	)
	return err
}

// RemoveColorGroup deletes a color group; tags referencing it fall back to
// no color via ON DELETE SET NULL.
func (r *Resolver) RemoveColorGroup(namespace, slug string) error {
	ns := model.Namespace{Slug: namespace}
	if ns.IsReserved() {
		return &liberr.ReservedNamespace{Slug: namespace}
	}
	res, err := r.db.Exec(`DELETE FROM tag_color_groups WHERE namespace = ? AND slug = ?`, namespace, slug)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &liberr.NotFound{Kind: "color_group", ID: 0}
	}
	return nil
}

// ColorGroups lists every color group registered under namespace.
func (r *Resolver) ColorGroups(namespace string) ([]model.TagColorGroup, error) {
	rows, err := r.db.Query(
		`SELECT namespace, slug, name, primary_color, secondary_color, color_border
		 FROM tag_color_groups WHERE namespace = ? ORDER BY slug`,
		namespace,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TagColorGroup
	for rows.Next() {
		var g model.TagColorGroup
		var secondary *string
		if err := rows.Scan(&g.Namespace, &g.Slug, &g.Name, &g.Primary, &secondary, &g.ColorBorder); err != nil {
			return nil, err
		}
		if secondary != nil {
			g.Secondary = *secondary
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
