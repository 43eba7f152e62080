package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestViolationClassification(t *testing.T) {
	unique := fmt.Errorf("create user: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	constraint, ok := IsUniqueViolation(unique)
	assert.True(t, ok)
	assert.Equal(t, "users_email_key", constraint)

	_, ok = IsForeignKeyViolation(unique)
	assert.False(t, ok)

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "properties_country_id_fkey"}
	constraint, ok = IsForeignKeyViolation(fk)
	assert.True(t, ok)
	assert.Equal(t, "properties_country_id_fkey", constraint)

	assert.True(t, IsCheckViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, IsCheckViolation(errors.New("plain")))

	assert.True(t, IsNumericOutOfRange(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "22003"})))
	assert.False(t, IsNumericOutOfRange(&pgconn.PgError{Code: "23514"}))

	_, _, ok = Violation(errors.New("plain"))
	assert.False(t, ok)
}
