package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrReferenceNotFound is returned when an insert points at a parent row that does not exist.
var ErrReferenceNotFound = errors.New("referenced record not found")

const (
	pgForeignKeyViolation    = "23503"
	mysqlForeignKeyViolation = 1452
)

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlForeignKeyViolation
	}
	return false
}

// referenceError replaces a foreign-key violation with ErrReferenceNotFound so
// callers need not know the driver. Other errors pass through unchanged.
func referenceError(err error, format string, args ...any) error {
	if err == nil || !isForeignKeyViolation(err) {
		return err
	}
	return fmt.Errorf(format+": %w", append(args, ErrReferenceNotFound)...)
}
