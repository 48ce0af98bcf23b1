package library

import (
	"sort"
	"strconv"
	"strings"

	"github.com/TagStudioDev/TagStudio-sub002/model"
)

const noTagLabel = "No Tag"
const noExtensionLabel = "(no extension)"

// Group buckets entryIDs according to criteria.
func (l *Library) Group(entryIDs []int64, criteria model.GroupCriterion) (model.GroupedResult, error) {
	if criteria.ByTag {
		return l.groupByTag(entryIDs, criteria.ParentTag)
	}
	return l.groupByFiletype(entryIDs)
}

func (l *Library) groupByTag(entryIDs []int64, parentTag int64) (model.GroupedResult, error) {
	closure, err := l.Tags.Closure(parentTag)
	if err != nil {
		return model.GroupedResult{}, err
	}
	childIDs := make([]int64, 0, len(closure))
	for _, id := range closure {
		if id != parentTag {
			childIDs = append(childIDs, id)
		}
	}

	bucket := make(map[int64][]int64, len(childIDs))
	tagged := make(map[int64]bool)

	if len(entryIDs) > 0 && len(childIDs) > 0 {
		entryPlaceholders, entryArgs := int64InClause(entryIDs)
		tagPlaceholders, tagArgs := int64InClause(childIDs)
		rows, err := l.db.Query(
			`SELECT tag_id, entry_id FROM entry_tags WHERE entry_id IN (`+entryPlaceholders+
				`) AND tag_id IN (`+tagPlaceholders+`)`,
			append(entryArgs, tagArgs...)...,
		)
		if err != nil {
			return model.GroupedResult{}, err
		}
		defer rows.Close()
		for rows.Next() {
			var tagID, entryID int64
			if err := rows.Scan(&tagID, &entryID); err != nil {
				return model.GroupedResult{}, err
			}
			bucket[tagID] = append(bucket[tagID], entryID)
			tagged[entryID] = true
		}
		if err := rows.Err(); err != nil {
			return model.GroupedResult{}, err
		}
	}

	type namedBucket struct {
		tagID int64
		name  string
		ids   []int64
	}
	var named []namedBucket
	for tagID, ids := range bucket {
		t, err := l.Tags.Tag(tagID)
		if err != nil {
			return model.GroupedResult{}, err
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		named = append(named, namedBucket{tagID: tagID, name: t.Name, ids: ids})
	}
	sort.Slice(named, func(i, j int) bool {
		return strings.ToLower(named[i].name) < strings.ToLower(named[j].name)
	})

	var groups []model.Group
	for _, nb := range named {
		groups = append(groups, model.Group{
			Key:      strconv.FormatInt(nb.tagID, 10),
			EntryIDs: nb.ids,
		})
	}

	var untaggedIDs []int64
	for _, id := range entryIDs {
		if !tagged[id] {
			untaggedIDs = append(untaggedIDs, id)
		}
	}
	if len(untaggedIDs) > 0 {
		sort.Slice(untaggedIDs, func(i, j int) bool { return untaggedIDs[i] < untaggedIDs[j] })
		groups = append(groups, model.Group{
			Key:          "no_tag",
			EntryIDs:     untaggedIDs,
			IsSpecial:    true,
			SpecialLabel: noTagLabel,
		})
	}

	return model.GroupedResult{TotalCount: len(entryIDs), Groups: groups}, nil
}

func (l *Library) groupByFiletype(entryIDs []int64) (model.GroupedResult, error) {
	buckets := make(map[string][]int64)

	if len(entryIDs) > 0 {
		placeholders, args := int64InClause(entryIDs)
		rows, err := l.db.Query(`SELECT id, suffix FROM entries WHERE id IN (`+placeholders+`)`, args...)
		if err != nil {
			return model.GroupedResult{}, err
		}
		defer rows.Close()
		for rows.Next() {
			var id int64
			var suffix string
			if err := rows.Scan(&id, &suffix); err != nil {
				return model.GroupedResult{}, err
			}
			suffix = strings.ToLower(suffix)
			if suffix == "" {
				suffix = noExtensionLabel
			}
			buckets[suffix] = append(buckets[suffix], id)
		}
		if err := rows.Err(); err != nil {
			return model.GroupedResult{}, err
		}
	}

	// "(no extension)" sorts inline as an ordinary key, matching the
	// original grouping strategy — it is not a flagged special bucket.
	var suffixes []string
	for s := range buckets {
		suffixes = append(suffixes, s)
	}
	sort.Strings(suffixes)

	var groups []model.Group
	for _, s := range suffixes {
		ids := buckets[s]
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		groups = append(groups, model.Group{Key: s, EntryIDs: ids})
	}

	return model.GroupedResult{TotalCount: len(entryIDs), Groups: groups}, nil
}
