package repository

import (
	"errors"
	"testing"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(pgx.ErrNoRows), domain.ErrNotFound)

	other := errors.New("boom")
	assert.Equal(t, other, translate(other))

	verr, ok := domain.AsValidation(translate(&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "flights_route_id_fkey"}))
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "route")

	verr, ok = domain.AsValidation(translate(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: ticketSeatConstraint}))
	require.True(t, ok)
	assert.Contains(t, verr.Fields, domain.NonFieldErrors)
}

func TestSchemaDeclaresSeatConstraint(t *testing.T) {
	assert.Contains(t, schema, "CONSTRAINT "+ticketSeatConstraint+" UNIQUE (flight_id, row_no, seat_no)")
	assert.Contains(t, schema, "REFERENCES flights (id) ON DELETE CASCADE")
}
