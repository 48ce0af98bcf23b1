package library

import (
	"database/sql"
	"fmt"

	"github.com/TagStudioDev/TagStudio-sub002/model"
	"github.com/TagStudioDev/TagStudio-sub002/query"
)

// sortColumns maps a sort key to its backing column. Entries have no
// separate display name, so SortName falls back to path ordering.
var sortColumns = map[model.SortKey]string{
	model.SortPath:         "entries.path",
	model.SortDateAdded:    "entries.date_added",
	model.SortDateCreated:  "entries.date_created",
	model.SortDateModified: "entries.date_modified",
	model.SortName:         "entries.path",
}

// SearchLibrary parses and compiles filter.Query, returning the exact
// total match count plus one zero-indexed page of entries, ties broken
// by entry id ascending.
func (l *Library) SearchLibrary(filter model.FilterState) (model.SearchResult, error) {
	ast, err := query.Parse(filter.Query)
	if err != nil {
		return model.SearchResult{}, err
	}
	where, args, err := l.compiler.Compile(ast)
	if err != nil {
		return model.SearchResult{}, err
	}

	var total int
	if err := l.db.QueryRow(`SELECT COUNT(*) FROM entries WHERE `+where, args...).Scan(&total); err != nil {
		return model.SearchResult{}, err
	}

	col, ok := sortColumns[filter.SortKey]
	if !ok {
		col = sortColumns[model.SortPath]
	}
	dir := "ASC"
	if filter.SortDir == model.Desc {
		dir = "DESC"
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = total
	}
	offset := filter.Page * pageSize

	sqlStr := fmt.Sprintf(
		`SELECT id, folder_id, path, suffix, date_added, date_created, date_modified
		 FROM entries WHERE %s ORDER BY %s %s, entries.id ASC LIMIT ? OFFSET ?`,
		where, col, dir,
	)
	pageArgs := append(append([]interface{}{}, args...), pageSize, offset)

	rows, err := l.db.Query(sqlStr, pageArgs...)
	if err != nil {
		return model.SearchResult{}, err
	}
	defer rows.Close()

	var items []model.Entry
	for rows.Next() {
		var e model.Entry
		var created, modified sql.NullTime
		if err := rows.Scan(&e.ID, &e.FolderID, &e.Path, &e.Suffix, &e.DateAdded, &created, &modified); err != nil {
			return model.SearchResult{}, err
		}
		if created.Valid {
			e.DateCreated = created.Time
		}
		if modified.Valid {
			e.DateModified = modified.Time
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return model.SearchResult{}, err
	}

	return model.SearchResult{TotalCount: total, Items: items}, nil
}
