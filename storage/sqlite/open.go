// Package sqlite implements the library's persistent relational schema
// over database/sql and github.com/mattn/go-sqlite3. Every write goes
// through a single transaction; migrations run forward only, in order,
// at Open time.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"github.com/TagStudioDev/TagStudio-sub002/liberr"
)

// DBVersionCurrentKey is the preferences row holding the applied schema
// version.
const DBVersionCurrentKey = "db_version_current"

// DBPath returns the canonical path to a library's metadata database
// given its root directory.
func DBPath(libraryRoot string) string {
	return filepath.Join(libraryRoot, ".tagstudio", "ts_library.sqlite")
}

// Open opens (creating if necessary) the sqlite database for the library
// rooted at libraryRoot, applying any outstanding forward migrations.
//
// It fails with liberr.OpenFailure{Reason: NotReadable} if the containing
// directory cannot be created/accessed, and with
// liberr.OpenFailure{Reason: IncompatibleVersion} if the stored schema
// version is newer than CurrentVersion().
func Open(libraryRoot string) (*sql.DB, error) {
	dbPath := DBPath(libraryRoot)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, &liberr.OpenFailure{Reason: liberr.NotReadable, Detail: err.Error()}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, &liberr.OpenFailure{Reason: liberr.NotReadable, Detail: err.Error()}
	}
	// SQLite allows only one writer at a time; WAL mode lets readers proceed
	// concurrently with that writer.
	if _, err := db.Exec("PRAGMA journal_mode = WAL; PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, &liberr.OpenFailure{Reason: liberr.Corrupt, Detail: err.Error()}
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS preferences (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		return &liberr.OpenFailure{Reason: liberr.Corrupt, Detail: err.Error()}
	}

	stored, err := readVersion(db)
	if err != nil {
		return &liberr.OpenFailure{Reason: liberr.Corrupt, Detail: err.Error()}
	}
	if stored > CurrentVersion() {
		return &liberr.OpenFailure{
			Reason: liberr.IncompatibleVersion,
			Detail: fmt.Sprintf("stored schema version %d is newer than this build's %d", stored, CurrentVersion()),
		}
	}

	for _, m := range migrations {
		if m.Version <= stored {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return &liberr.OpenFailure{Reason: liberr.Corrupt, Detail: err.Error()}
		}
		if err := m.Up(tx); err != nil {
			tx.Rollback()
			return &liberr.OpenFailure{Reason: liberr.Corrupt, Detail: fmt.Sprintf("migration %d: %v", m.Version, err)}
		}
		if err := writeVersionTx(tx, m.Version); err != nil {
			tx.Rollback()
			return &liberr.OpenFailure{Reason: liberr.Corrupt, Detail: err.Error()}
		}
		if err := tx.Commit(); err != nil {
			return &liberr.OpenFailure{Reason: liberr.Corrupt, Detail: err.Error()}
		}
	}
	return nil
}

func readVersion(db *sql.DB) (int, error) {
	var raw string
	err := db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, DBVersionCurrentKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(raw)
}

func writeVersionTx(tx *sql.Tx, version int) error {
	_, err := tx.Exec(
		`INSERT INTO preferences (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		DBVersionCurrentKey, strconv.Itoa(version),
	)
	return err
}
