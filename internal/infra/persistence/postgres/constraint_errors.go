package postgres

import (
	"strings"
)

// Postgres constraint violations surface as driver errors whose text carries
// the SQLSTATE class. We match on the message instead of the driver type so
// the translation works for both pgx and lib/pq rows.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()

	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "unique constraint")
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()

	return strings.Contains(msg, "SQLSTATE 23503") ||
		strings.Contains(msg, "foreign key constraint")
}

func isNotNullViolation(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()

	return strings.Contains(msg, "SQLSTATE 23502") ||
		strings.Contains(msg, "null value in column")
}
