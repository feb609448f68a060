package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// foreignKeyViolation is the PostgreSQL SQLSTATE for a foreign key failure.
const foreignKeyViolation = "23503"

// isForeignKeyViolation reports whether err came from a foreign key
// constraint, such as deleting a category that an article was filed under
// after the dependents were counted.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
