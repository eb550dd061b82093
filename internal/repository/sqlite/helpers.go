package sqlite

import "database/sql"

// Helper functions shared across repository implementations

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
