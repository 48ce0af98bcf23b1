package library

import "database/sql"

const ignorePatternsKey = "ignore_patterns"

// IgnorePatterns returns the library's stored gitignore-style exclude
// lines, or nil if none have been set.
func (l *Library) IgnorePatterns() ([]string, error) {
	var raw string
	err := l.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, ignorePatternsKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return splitNonEmpty(raw), nil
}

// SetIgnorePatterns replaces the library's stored exclude lines.
func (l *Library) SetIgnorePatterns(lines []string) error {
	_, err := l.db.Exec(
		`INSERT INTO preferences (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		ignorePatternsKey, joinLines(lines),
	)
	return err
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

func splitNonEmpty(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
