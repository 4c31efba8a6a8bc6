package postgres

import (
	"errors"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"batibill/internal/core/apperror"
)

const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a PostgreSQL unique
// constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// mapScanError translates pgx sentinel errors into application errors.
func mapScanError(err error, entity string, id any) error {
	if errors.Is(err, pgx.ErrNoRows) || pgxscan.NotFound(err) {
		return apperror.NewNotFound(entity, id)
	}
	return apperror.NewInternal(err)
}
