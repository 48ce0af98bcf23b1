package sqlite

import (
	"database/sql"

	"github.com/TagStudioDev/TagStudio-sub002/model"
)

// Migration is one forward step of the schema. Version numbers start at 1
// and must be applied in order; there is no downgrade path.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// migrations is the ordered list of forward migrations. Open() applies
// every migration whose Version is greater than the stored schema version.
var migrations = []Migration{
	{
		Version:     1,
		Description: "initial schema: folders, tags, entries, fields",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(schemaV1)
			return err
		},
	},
	{
		Version:     2,
		Description: "seed reserved meta tags (archived, favorite)",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(
				`INSERT OR IGNORE INTO tags (id, name, is_category) VALUES (?, 'Archived', 0), (?, 'Favorite', 0)`,
				model.ArchivedTagID, model.FavoriteTagID,
			)
			return err
		},
	},
}

// CurrentVersion is the schema version this build knows how to reach.
func CurrentVersion() int {
	return len(migrations)
}
