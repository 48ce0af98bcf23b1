package tags

import (
	"github.com/TagStudioDev/TagStudio-sub002/logger"
)

// ResolveTagName returns the set of tag ids whose name or shorthand
// matches q case-insensitively, unioned with the tag ids of any alias
// whose name matches q. Ambiguity (more than one match) is permitted; a
// log line records it and every matching id flows forward. Ids are
// returned in ascending order, a stable and deterministic tie-break for
// callers that need one.
func (r *Resolver) ResolveTagName(q string) ([]int64, error) {
	rows, err := r.db.Query(`
		SELECT id FROM tags WHERE name = ? COLLATE NOCASE OR shorthand = ? COLLATE NOCASE
		UNION
		SELECT tag_id FROM tag_aliases WHERE name = ? COLLATE NOCASE
		ORDER BY id
	`, q, q, q)
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
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) > 1 {
		logger.Warnf("tag name %q is ambiguous: %d matching tags %v", q, len(ids), ids)
	}
	return ids, nil
}
