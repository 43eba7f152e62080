package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the repositories translate into typed domain errors.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
	CodeNumericOutOfRange   = "22003"
)

// Violation returns the SQLSTATE code and constraint name carried by a
// Postgres error, or ok=false when err is not a *pgconn.PgError.
func Violation(err error) (code, constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", "", false
	}
	return pgErr.Code, pgErr.ConstraintName, true
}

// IsUniqueViolation reports whether err is a unique constraint violation and
// returns the violated constraint.
func IsUniqueViolation(err error) (string, bool) {
	code, constraint, ok := Violation(err)
	return constraint, ok && code == CodeUniqueViolation
}

// IsForeignKeyViolation reports whether err is a foreign key violation and
// returns the violated constraint.
func IsForeignKeyViolation(err error) (string, bool) {
	code, constraint, ok := Violation(err)
	return constraint, ok && code == CodeForeignKeyViolation
}

// IsCheckViolation reports whether err is a check constraint violation.
func IsCheckViolation(err error) bool {
	code, _, ok := Violation(err)
	return ok && code == CodeCheckViolation
}

// IsNumericOutOfRange reports whether err is a value that does not fit its
// numeric column.
func IsNumericOutOfRange(err error) bool {
	code, _, ok := Violation(err)
	return ok && code == CodeNumericOutOfRange
}
