package library

import (
	"database/sql"

	"github.com/TagStudioDev/TagStudio-sub002/liberr"
	"github.com/TagStudioDev/TagStudio-sub002/model"
	"github.com/TagStudioDev/TagStudio-sub002/pathutil"
)

// AddEntries inserts entries in a single transaction, returning the
// assigned id for each. Entries is are normalized (POSIX path, lower-cased
// suffix) before insert. A row whose (folder, path) already exists is
// rejected without aborting the rest of the batch; its slot in the
// returned ids is left 0 and the error for that row is included in errs.
func (l *Library) AddEntries(folderID int64, entries []model.Entry) (ids []int64, errs []error) {
	tx, err := l.db.Begin()
	if err != nil {
		return nil, []error{err}
	}
	defer tx.Rollback()

	ids = make([]int64, len(entries))
	errs = make([]error, len(entries))

	stmt, err := tx.Prepare(
		`INSERT INTO entries (folder_id, path, suffix, date_added, date_created, date_modified)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return nil, []error{err}
	}
	defer stmt.Close()

	for i, e := range entries {
		posixPath := pathutil.ToPosix(e.Path)
		suffix := pathutil.Suffix(posixPath)
		res, err := stmt.Exec(folderID, posixPath, suffix, e.DateAdded, nullableTime(e.DateCreated), nullableTime(e.DateModified))
		if err != nil {
			errs[i] = &liberr.ConflictingPath{NewPath: posixPath}
			continue
		}
		id, err := res.LastInsertId()
		if err != nil {
			errs[i] = err
			continue
		}
		ids[i] = id
	}

	if err := tx.Commit(); err != nil {
		return nil, []error{err}
	}
	return ids, errs
}

func nullableTime(t interface{ IsZero() bool }) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

// RemoveEntries deletes the given entry ids in one transaction; field
// instances and tag joins cascade via foreign keys.
func (l *Library) RemoveEntries(ids []int64) error {
	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`DELETE FROM entries WHERE id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, id := range ids {
		if _, err := stmt.Exec(id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// UpdateEntryPath rewrites entry id's path. It reports ok=false without
// error if newPath is already taken by another entry in the same folder.
func (l *Library) UpdateEntryPath(id int64, newPath string) (ok bool, err error) {
	posixPath := pathutil.ToPosix(newPath)
	suffix := pathutil.Suffix(posixPath)

	tx, err := l.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var folderID int64
	if err := tx.QueryRow(`SELECT folder_id FROM entries WHERE id = ?`, id).Scan(&folderID); err != nil {
		if err == sql.ErrNoRows {
			return false, &liberr.NotFound{Kind: "entry", ID: id}
		}
		return false, err
	}

	var conflictID int64
	err = tx.QueryRow(`SELECT id FROM entries WHERE folder_id = ? AND path = ? AND id != ?`, folderID, posixPath, id).Scan(&conflictID)
	if err == nil {
		return false, nil
	}
	if err != sql.ErrNoRows {
		return false, err
	}

	if _, err := tx.Exec(`UPDATE entries SET path = ?, suffix = ? WHERE id = ?`, posixPath, suffix, id); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

// PathEntry is one row of AllPaths' stream.
type PathEntry struct {
	ID   int64
	Path string
}

// AllPaths streams every (id, path) pair ordered by id ascending. fn is
// called once per row; returning an error stops iteration early.
func (l *Library) AllPaths(fn func(PathEntry) error) error {
	rows, err := l.db.Query(`SELECT id, path FROM entries ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var pe PathEntry
		if err := rows.Scan(&pe.ID, &pe.Path); err != nil {
			return err
		}
		if err := fn(pe); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Entry loads a single entry row by id.
func (l *Library) Entry(id int64) (model.Entry, error) {
	var e model.Entry
	var created, modified sql.NullTime
	err := l.db.QueryRow(
		`SELECT id, folder_id, path, suffix, date_added, date_created, date_modified FROM entries WHERE id = ?`, id,
	).Scan(&e.ID, &e.FolderID, &e.Path, &e.Suffix, &e.DateAdded, &created, &modified)
	if err == sql.ErrNoRows {
		return model.Entry{}, &liberr.NotFound{Kind: "entry", ID: id}
	}
	if err != nil {
		return model.Entry{}, err
	}
	if created.Valid {
		e.DateCreated = created.Time
	}
	if modified.Valid {
		e.DateModified = modified.Time
	}
	return e, nil
}
