// Package tags implements the tag hierarchy: parent/child edges, alias and
// shorthand name resolution, color groups, namespaces, and the descendant
// closure query used by grouping and the query compiler.
package tags

import "database/sql"

// Resolver is the tag-hierarchy façade over a library's database.
type Resolver struct {
	db *sql.DB
}

// New wraps db for tag-hierarchy operations.
func New(db *sql.DB) *Resolver {
	return &Resolver{db: db}
}

// closureQuery returns tagID together with every tag reachable by
// following "child has parent" edges downward from it, i.e. the tag plus
// all of its descendants. The edge tag_parents(child_id, parent_id) means
// child_id has parent_id as an immediate ancestor.
const closureQuery = `
WITH RECURSIVE closure(id) AS (
	SELECT ? AS id
	UNION
	SELECT tp.child_id FROM tag_parents tp JOIN closure c ON tp.parent_id = c.id
)
SELECT id FROM closure
`

// Closure returns tagID's descendant closure: itself plus every tag that
// has it as an ancestor. The result is stable across repeated calls for
// an unchanged graph and always finite since the graph is acyclic.
func (r *Resolver) Closure(tagID int64) ([]int64, error) {
	rows, err := r.db.Query(closureQuery, tagID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// ClosureInMemory computes the same closure as Closure, but over an
// explicit in-memory adjacency map (child id -> its parent ids), guarding
// against malformed cycles with a visited set even though the mutation
// contracts in this package never allow one to be created.
func ClosureInMemory(childToParents map[int64][]int64, tagID int64) []int64 {
	// Build parent -> children for downward traversal.
	parentToChildren := make(map[int64][]int64, len(childToParents))
	for child, parents := range childToParents {
		for _, p := range parents {
			parentToChildren[p] = append(parentToChildren[p], child)
		}
	}

	visited := map[int64]bool{tagID: true}
	queue := []int64{tagID}
	out := []int64{tagID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range parentToChildren[cur] {
			if visited[child] {
				continue
			}
			visited[child] = true
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	return out
}

// WouldCreateCycle reports whether adding a "childID has parent newParentID"
// edge would make childID reachable from itself: true iff newParentID is
// already in childID's descendant closure. The tag graph must stay
// acyclic; a tag is never its own ancestor.
func (r *Resolver) WouldCreateCycle(childID, newParentID int64) (bool, error) {
	if childID == newParentID {
		return true, nil
	}
	descendants, err := r.Closure(childID)
	if err != nil {
		return false, err
	}
	for _, id := range descendants {
		if id == newParentID {
			return true, nil
		}
	}
	return false, nil
}
