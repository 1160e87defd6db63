// Package postgres implements the repository interfaces on PostgreSQL.
// Queries are parameterized; filtered reads are composed with goqu, row mapping of flat
// tables goes through sqlx.
package postgres

import (
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5/pgconn"

	"marketplace/internal/repository"
)

// dialect builds prepared ($n) PostgreSQL statements.
var dialect = goqu.Dialect("postgres")

const pgUniqueViolation = "23505"

// translate maps driver errors onto repository errors.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}
