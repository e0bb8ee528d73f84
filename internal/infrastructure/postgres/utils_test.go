package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestContainsPattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, "%yassa%", containsPattern("yassa"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%c:\\x%`, containsPattern(`c:\x`))
	assert.Equal(t, "%%", containsPattern(""))
}

func TestValidUUID(t *testing.T) {
	assert.True(t, validUUID("0b8f6c3e-6a51-4f2c-9a57-3d0f1c2b4e5a"))
	assert.False(t, validUUID("no-existe"))
	assert.False(t, validUUID(""))
}

func TestClasificacionDeErroresPostgres(t *testing.T) {
	unique := fmt.Errorf("insertar: %w", &pgconn.PgError{Code: "23505"})
	check := &pgconn.PgError{Code: "23514", ConstraintName: pointsConstraint}
	fk := &pgconn.PgError{Code: "23503"}
	badText := &pgconn.PgError{Code: "22P02"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(fk))

	assert.True(t, isCheckViolation(check, pointsConstraint))
	assert.True(t, isCheckViolation(check, ""))
	assert.False(t, isCheckViolation(check, "orders_total_sum"))

	assert.True(t, isBadReference(fk))
	assert.True(t, isBadReference(badText))
	assert.False(t, isBadReference(unique))
	assert.False(t, isBadReference(fmt.Errorf("otro")))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	v := nullIfEmpty("Dakar")
	if assert.NotNil(t, v) {
		assert.Equal(t, "Dakar", *v)
	}
}
