package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool used by the repositories.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

//go:embed schema.sql
var schema string

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

const ticketSeatConstraint = "tickets_flight_row_seat_key"

// foreignKeyFields maps constraint names to the request field that carries the key.
var foreignKeyFields = map[string]string{
	"routes_source_id_fkey":           "source",
	"routes_destination_id_fkey":      "destination",
	"airplanes_airplane_type_id_fkey": "airplane_type",
	"flights_route_id_fkey":           "route",
	"flights_airplane_id_fkey":        "airplane",
	"flight_crew_crew_id_fkey":        "crew",
	"tickets_flight_id_fkey":          "flight",
	"orders_user_id_fkey":             "user",
	"flight_crew_flight_id_fkey":      "flight",
	"tickets_order_id_fkey":           "order",
}

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// translate maps driver errors onto domain errors.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	pgErr, ok := pgError(err)
	if !ok {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		if pgErr.ConstraintName == ticketSeatConstraint {
			return domain.NewValidationError(domain.NonFieldErrors, "The fields flight, row, seat must make a unique set.")
		}
		return domain.NewValidationError(domain.NonFieldErrors, "Object with these values already exists.")
	case pgForeignKeyViolation:
		field, ok := foreignKeyFields[pgErr.ConstraintName]
		if !ok {
			field = domain.NonFieldErrors
		}
		return domain.NewValidationError(field, "Invalid pk - object does not exist.")
	case pgCheckViolation:
		return domain.NewValidationError(domain.NonFieldErrors, pgErr.Message)
	}
	return err
}

func pageArgs(p domain.Page) (limit, offset any) {
	if p.Limit <= 0 {
		return nil, 0
	}
	return p.Limit, p.Offset
}
