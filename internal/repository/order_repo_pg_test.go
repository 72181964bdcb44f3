package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gridColumns = []string{"flight_id", "airplane_id", "name", "rows", "seats_in_row", "airplane_type_id"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestOrderRepository_Create_Commits(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)
	ctx := context.Background()
	created := time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FOR SHARE OF f`)).
		WithArgs([]int64{7}).
		WillReturnRows(pgxmock.NewRows(gridColumns).AddRow(int64(7), int64(1), "A320", 10, 4, int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO orders (user_id)`)).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), created))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO tickets`)).
		WithArgs(2, 3, int64(7), int64(11)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(100)))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO tickets`)).
		WithArgs(3, 4, int64(7), int64(11)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(101)))
	mock.ExpectCommit()
	mock.ExpectRollback()

	order := &domain.Order{UserID: 3, Tickets: []domain.Ticket{
		{Row: 2, Seat: 3, FlightID: 7},
		{Row: 3, Seat: 4, FlightID: 7},
	}}
	require.NoError(t, repo.Create(ctx, order))

	assert.Equal(t, int64(11), order.ID)
	assert.Equal(t, created, order.CreatedAt)
	assert.Equal(t, int64(100), order.Tickets[0].ID)
	assert.Equal(t, int64(101), order.Tickets[1].ID)
	assert.Equal(t, int64(11), order.Tickets[1].OrderID)
}

func TestOrderRepository_Create_DuplicateSeatRollsBack(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FOR SHARE OF f`)).
		WithArgs([]int64{7}).
		WillReturnRows(pgxmock.NewRows(gridColumns).AddRow(int64(7), int64(1), "A320", 10, 4, int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO orders (user_id)`)).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(12), time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO tickets`)).
		WithArgs(1, 1, int64(7), int64(12)).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: ticketSeatConstraint})
	mock.ExpectRollback()

	order := &domain.Order{UserID: 3, Tickets: []domain.Ticket{{Row: 1, Seat: 1, FlightID: 7}}}
	err := repo.Create(ctx, order)

	verr, ok := domain.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Equal(t, []string{"The fields flight, row, seat must make a unique set."}, verr.Fields[domain.NonFieldErrors])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_InvalidSeatWritesNothing(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FOR SHARE OF f`)).
		WithArgs([]int64{7}).
		WillReturnRows(pgxmock.NewRows(gridColumns).AddRow(int64(7), int64(1), "A320", 10, 4, int64(1)))
	mock.ExpectRollback()

	order := &domain.Order{UserID: 3, Tickets: []domain.Ticket{
		{Row: 1, Seat: 1, FlightID: 7},
		{Row: 11, Seat: 1, FlightID: 7},
	}}
	err := repo.Create(context.Background(), order)

	verr, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "row")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_UnknownFlight(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FOR SHARE OF f`)).
		WithArgs([]int64{99}).
		WillReturnRows(pgxmock.NewRows(gridColumns))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &domain.Order{UserID: 3, Tickets: []domain.Ticket{{Row: 1, Seat: 1, FlightID: 99}}})

	verr, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "tickets[0].flight")
}

func TestOrderRepository_Create_EmptyTickets(t *testing.T) {
	repo := NewOrderRepository(newMock(t))

	err := repo.Create(context.Background(), &domain.Order{UserID: 3})
	assert.True(t, domain.IsValidation(err))
}

func TestOrderRepository_DeleteForUser(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM orders WHERE id=$1 AND user_id=$2`)).
		WithArgs(int64(5), int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM orders WHERE id=$1 AND user_id=$2`)).
		WithArgs(int64(5), int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.DeleteForUser(ctx, 3, 5))
	assert.True(t, errors.Is(repo.DeleteForUser(ctx, 4, 5), domain.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetForUser_Foreign(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE id=$1 AND user_id=$2`)).
		WithArgs(int64(5), int64(4)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "created_at"}))

	_, err := repo.GetForUser(context.Background(), 4, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderRepository_ListByUser(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM orders WHERE user_id=$1`)).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, created_at FROM orders WHERE user_id=$1`)).
		WithArgs(int64(3), 10, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "created_at"}).
			AddRow(int64(2), int64(3), now).
			AddRow(int64(1), int64(3), now.Add(-time.Hour)))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM tickets WHERE order_id = ANY($1)`)).
		WithArgs([]int64{2, 1}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "row_no", "seat_no", "flight_id", "order_id"}).
			AddRow(int64(10), 1, 1, int64(7), int64(1)).
			AddRow(int64(11), 2, 2, int64(7), int64(2)).
			AddRow(int64(12), 2, 3, int64(7), int64(2)))

	orders, total, err := repo.ListByUser(context.Background(), 3, domain.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, orders, 2)
	assert.Len(t, orders[0].Tickets, 2)
	assert.Len(t, orders[1].Tickets, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
