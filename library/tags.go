package library

import "github.com/TagStudioDev/TagStudio-sub002/model"

// AddTag delegates to the tag hierarchy resolver.
func (l *Library) AddTag(t model.Tag) (int64, error) {
	return l.Tags.AddTag(t)
}

// UpdateTag delegates to the tag hierarchy resolver.
func (l *Library) UpdateTag(t model.Tag) error {
	return l.Tags.UpdateTag(t)
}

// RemoveTag delegates to the tag hierarchy resolver.
func (l *Library) RemoveTag(id int64) error {
	return l.Tags.RemoveTag(id)
}

// AssignTag attaches tagID to each of entryIDs. Re-assigning a tag an
// entry already bears is a no-op for that pair.
func (l *Library) AssignTag(tagID int64, entryIDs ...int64) error {
	if len(entryIDs) == 0 {
		return nil
	}
	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO entry_tags (entry_id, tag_id) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, entryID := range entryIDs {
		if _, err := stmt.Exec(entryID, tagID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// UnassignTag detaches tagID from each of entryIDs.
func (l *Library) UnassignTag(tagID int64, entryIDs ...int64) error {
	if len(entryIDs) == 0 {
		return nil
	}
	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`DELETE FROM entry_tags WHERE entry_id = ? AND tag_id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, entryID := range entryIDs {
		if _, err := stmt.Exec(entryID, tagID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetTagEntries reports, for each of tagIDs, which of entryIDs bear it.
func (l *Library) GetTagEntries(tagIDs, entryIDs []int64) (map[int64][]int64, error) {
	result := make(map[int64][]int64, len(tagIDs))
	if len(tagIDs) == 0 || len(entryIDs) == 0 {
		return result, nil
	}

	tagPlaceholders, tagArgs := int64InClause(tagIDs)
	entryPlaceholders, entryArgs := int64InClause(entryIDs)

	query := `SELECT tag_id, entry_id FROM entry_tags WHERE tag_id IN (` + tagPlaceholders +
		`) AND entry_id IN (` + entryPlaceholders + `) ORDER BY tag_id, entry_id`

	args := append(tagArgs, entryArgs...)
	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var tagID, entryID int64
		if err := rows.Scan(&tagID, &entryID); err != nil {
			return nil, err
		}
		result[tagID] = append(result[tagID], entryID)
	}
	return result, rows.Err()
}

func int64InClause(ids []int64) (string, []interface{}) {
	placeholders := make([]byte, 0, len(ids)*2)
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
		args[i] = id
	}
	return string(placeholders), args
}
