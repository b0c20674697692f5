package database

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a query matches no rows.
	ErrNotFound = errors.New("database: record not found")

	// ErrDuplicateKey is returned on unique constraint violations.
	ErrDuplicateKey = errors.New("database: duplicate key")

	// ErrNotConfigured is returned when no database handle is available yet.
	ErrNotConfigured = errors.New("database: not configured")
)

// mapErr translates raw driver errors into package sentinels so callers can
// use errors.Is without knowing which engine is behind the handle.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	// PostgreSQL SQLSTATE 23505: unique_violation.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return errors.Join(ErrDuplicateKey, err)
	}

	// MySQL 1062: ER_DUP_ENTRY.
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return errors.Join(ErrDuplicateKey, err)
	}

	return err
}
