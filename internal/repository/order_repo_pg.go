package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/skybook/internal/domain"
)

type OrderRepository interface {
	// Create persists the order and all its tickets in one transaction.
	Create(ctx context.Context, order *domain.Order) error
	ListByUser(ctx context.Context, userID int64, page domain.Page) ([]domain.Order, int, error)
	GetForUser(ctx context.Context, userID, id int64) (*domain.Order, error)
	DeleteForUser(ctx context.Context, userID, id int64) error
}

type PGOrderRepository struct {
	db DB
}

func NewOrderRepository(db DB) OrderRepository {
	return &PGOrderRepository{db: db}
}

func (r *PGOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if len(order.Tickets) == 0 {
		return domain.NewValidationError("tickets", "This list may not be empty.")
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	flightIDs := make([]int64, 0, len(order.Tickets))
	seen := make(map[int64]struct{}, len(order.Tickets))
	for _, t := range order.Tickets {
		if _, ok := seen[t.FlightID]; !ok {
			seen[t.FlightID] = struct{}{}
			flightIDs = append(flightIDs, t.FlightID)
		}
	}

	// Seat bounds are checked again against the rows locked by this transaction.
	grids, err := seatGrids(ctx, tx, flightIDs, true)
	if err != nil {
		return err
	}
	for i, t := range order.Tickets {
		airplane, ok := grids[t.FlightID]
		if !ok {
			return domain.NewValidationError(fmt.Sprintf("tickets[%d].flight", i), "Invalid pk - object does not exist.")
		}
		if err := domain.ValidateSeat(t.Row, t.Seat, airplane); err != nil {
			return err
		}
	}

	if err := tx.QueryRow(ctx, `INSERT INTO orders (user_id) VALUES ($1) RETURNING id, created_at`, order.UserID).
		Scan(&order.ID, &order.CreatedAt); err != nil {
		return translate(err)
	}

	for i := range order.Tickets {
		t := &order.Tickets[i]
		t.OrderID = order.ID
		if err := tx.QueryRow(ctx, `INSERT INTO tickets (row_no, seat_no, flight_id, order_id) VALUES ($1, $2, $3, $4) RETURNING id`,
			t.Row, t.Seat, t.FlightID, t.OrderID).Scan(&t.ID); err != nil {
			return translate(err)
		}
	}

	return tx.Commit(ctx)
}

func (r *PGOrderRepository) ListByUser(ctx context.Context, userID int64, page domain.Page) ([]domain.Order, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM orders WHERE user_id=$1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageArgs(page)
	rows, err := r.db.Query(ctx, `SELECT id, user_id, created_at FROM orders WHERE user_id=$1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	index := make(map[int64]int)
	ids := make([]int64, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
			return nil, 0, err
		}
		o.Tickets = make([]domain.Ticket, 0)
		index[o.ID] = len(orders)
		ids = append(ids, o.ID)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return orders, total, nil
	}

	ticketRows, err := r.db.Query(ctx, `SELECT id, row_no, seat_no, flight_id, order_id FROM tickets WHERE order_id = ANY($1) ORDER BY row_no, seat_no`, ids)
	if err != nil {
		return nil, 0, err
	}
	defer ticketRows.Close()

	for ticketRows.Next() {
		var t domain.Ticket
		if err := ticketRows.Scan(&t.ID, &t.Row, &t.Seat, &t.FlightID, &t.OrderID); err != nil {
			return nil, 0, err
		}
		o := &orders[index[t.OrderID]]
		o.Tickets = append(o.Tickets, t)
	}
	return orders, total, ticketRows.Err()
}

// GetForUser returns ErrNotFound for orders owned by someone else.
func (r *PGOrderRepository) GetForUser(ctx context.Context, userID, id int64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.QueryRow(ctx, `SELECT id, user_id, created_at FROM orders WHERE id=$1 AND user_id=$2`, id, userID).
		Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
		return nil, translate(err)
	}

	rows, err := r.db.Query(ctx, `SELECT tk.id, tk.row_no, tk.seat_no, tk.order_id, `+flightSummaryColumns+`
FROM tickets tk
JOIN flights f ON f.id = tk.flight_id
JOIN routes r ON r.id = f.route_id
JOIN airports src ON src.id = r.source_id
JOIN airports dst ON dst.id = r.destination_id
JOIN airplanes a ON a.id = f.airplane_id
WHERE tk.order_id=$1
ORDER BY tk.row_no, tk.seat_no`, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	o.Tickets = make([]domain.Ticket, 0)
	for rows.Next() {
		var t domain.Ticket
		summary, err := scanFlightSummary(rows, &t.ID, &t.Row, &t.Seat, &t.OrderID)
		if err != nil {
			return nil, err
		}
		t.FlightID = summary.ID
		t.Flight = summary
		o.Tickets = append(o.Tickets, t)
	}
	return &o, rows.Err()
}

// DeleteForUser removes the order and its tickets.
func (r *PGOrderRepository) DeleteForUser(ctx context.Context, userID, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ OrderRepository = (*PGOrderRepository)(nil)
