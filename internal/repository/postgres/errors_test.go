package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: uniqueViolation, ConstraintName: "idx_invoices_entity_number"}

	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", dup), "idx_invoices_entity_number"))
	assert.False(t, isUniqueViolation(dup, "idx_orders_entity_number"))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: foreignKeyViolation}, "idx_invoices_entity_number"))
	assert.False(t, isUniqueViolation(errors.New("boom"), "idx_invoices_entity_number"))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(fmt.Errorf("delete: %w", &pgconn.PgError{Code: foreignKeyViolation})))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: uniqueViolation}))
	assert.False(t, isForeignKeyViolation(nil))
}
