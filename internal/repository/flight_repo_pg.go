package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/jackc/pgx/v5"
)

type FlightRepository interface {
	List(ctx context.Context, filter domain.FlightFilter, page domain.Page) ([]domain.FlightSummary, int, error)
	GetByID(ctx context.Context, id int64) (*domain.FlightDetail, error)
	// SeatGrids returns the airplane of every existing flight among ids, keyed by flight id.
	SeatGrids(ctx context.Context, ids []int64) (map[int64]domain.Airplane, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	db DB
}

func NewFlightRepository(db DB) FlightRepository {
	return &PGFlightRepository{db: db}
}

// ticketsAvailable is computed at read time: capacity minus sold tickets.
const ticketsAvailable = `a.rows * a.seats_in_row - (SELECT count(*) FROM tickets tk WHERE tk.flight_id = f.id)`

const flightSummaryColumns = `f.id, src.closest_big_city, dst.closest_big_city, a.name, f.departure_time, f.arrival_time,
	` + ticketsAvailable + ` AS tickets_available`

const flightJoins = `FROM flights f
JOIN routes r ON r.id = f.route_id
JOIN airports src ON src.id = r.source_id
JOIN airports dst ON dst.id = r.destination_id
JOIN airplanes a ON a.id = f.airplane_id`

func scanFlightSummary(row pgx.Row, extra ...any) (*domain.FlightSummary, error) {
	var (
		s        domain.FlightSummary
		src, dst string
	)
	dest := append(extra, &s.ID, &src, &dst, &s.AirplaneName, &s.DepartureTime, &s.ArrivalTime, &s.TicketsAvailable)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	s.CitiesRoute = fmt.Sprintf("%s - %s", src, dst)
	return &s, nil
}

// filterClause renders the WHERE clause for a flight filter. Conditions compose with AND.
func filterClause(filter domain.FlightFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.SourceCity != "" {
		args = append(args, filter.SourceCity)
		conds = append(conds, fmt.Sprintf("lower(src.closest_big_city) = lower($%d)", len(args)))
	}
	if filter.DestinationCity != "" {
		args = append(args, filter.DestinationCity)
		conds = append(conds, fmt.Sprintf("lower(dst.closest_big_city) = lower($%d)", len(args)))
	}
	if filter.AirportCity != "" {
		args = append(args, filter.AirportCity)
		conds = append(conds, fmt.Sprintf("lower(src.closest_big_city) = lower($%d)", len(args)))
	}
	if filter.DepartureDate != nil {
		args = append(args, filter.DepartureDate.Format("2006-01-02"))
		conds = append(conds, fmt.Sprintf("(f.departure_time AT TIME ZONE 'UTC')::date = $%d::date", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PGFlightRepository) List(ctx context.Context, filter domain.FlightFilter, page domain.Page) ([]domain.FlightSummary, int, error) {
	where, args := filterClause(filter)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) `+flightJoins+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageArgs(page)
	query := fmt.Sprintf(`SELECT %s %s%s ORDER BY f.departure_time DESC, f.id LIMIT $%d OFFSET $%d`,
		flightSummaryColumns, flightJoins, where, len(args)+1, len(args)+2)
	rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	flights := make([]domain.FlightSummary, 0)
	for rows.Next() {
		f, err := scanFlightSummary(rows)
		if err != nil {
			return nil, 0, err
		}
		flights = append(flights, *f)
	}
	return flights, total, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	var (
		d        domain.FlightDetail
		src, dst domain.Airport
		at       domain.AirplaneType
	)
	err := r.db.QueryRow(ctx, `SELECT f.id, f.departure_time, f.arrival_time, f.created_at, f.updated_at,
	r.id, r.distance, src.id, src.name, src.closest_big_city, dst.id, dst.name, dst.closest_big_city,
	a.id, a.name, a.rows, a.seats_in_row, a.image, t.id, t.name,
	`+ticketsAvailable+`
`+flightJoins+`
JOIN airplane_types t ON t.id = a.airplane_type_id
WHERE f.id=$1`, id).Scan(
		&d.ID, &d.DepartureTime, &d.ArrivalTime, &d.CreatedAt, &d.UpdatedAt,
		&d.Route.ID, &d.Route.Distance, &src.ID, &src.Name, &src.ClosestBigCity, &dst.ID, &dst.Name, &dst.ClosestBigCity,
		&d.Airplane.ID, &d.Airplane.Name, &d.Airplane.Rows, &d.Airplane.SeatsInRow, &d.Airplane.Image, &at.ID, &at.Name,
		&d.TicketsAvailable,
	)
	if err != nil {
		return nil, translate(err)
	}
	d.Route.SourceID, d.Route.DestinationID = src.ID, dst.ID
	d.Route.Source, d.Route.Destination = &src, &dst
	d.Airplane.AirplaneTypeID = at.ID
	d.Airplane.AirplaneType = &at
	d.RouteID, d.AirplaneID = d.Route.ID, d.Airplane.ID

	crewRows, err := r.db.Query(ctx, `SELECT c.id, c.first_name, c.last_name FROM crew c
JOIN flight_crew fc ON fc.crew_id = c.id
WHERE fc.flight_id=$1 ORDER BY c.id`, id)
	if err != nil {
		return nil, err
	}
	defer crewRows.Close()

	d.Crew = make([]domain.Crew, 0)
	d.CrewIDs = make([]int64, 0)
	for crewRows.Next() {
		var c domain.Crew
		if err := crewRows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		d.Crew = append(d.Crew, c)
		d.CrewIDs = append(d.CrewIDs, c.ID)
	}
	if err := crewRows.Err(); err != nil {
		return nil, err
	}

	seatRows, err := r.db.Query(ctx, `SELECT row_no, seat_no FROM tickets WHERE flight_id=$1 ORDER BY row_no, seat_no`, id)
	if err != nil {
		return nil, err
	}
	defer seatRows.Close()

	d.TakenPlaces = make([]domain.Seat, 0)
	for seatRows.Next() {
		var s domain.Seat
		if err := seatRows.Scan(&s.Row, &s.Seat); err != nil {
			return nil, err
		}
		d.TakenPlaces = append(d.TakenPlaces, s)
	}
	return &d, seatRows.Err()
}

func (r *PGFlightRepository) SeatGrids(ctx context.Context, ids []int64) (map[int64]domain.Airplane, error) {
	return seatGrids(ctx, r.db, ids, false)
}

// seatGrids loads airplanes by flight id. lock takes a share lock on the flight rows
// so the airplane cannot be swapped while tickets are inserted.
func seatGrids(ctx context.Context, q interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}, ids []int64, lock bool) (map[int64]domain.Airplane, error) {
	query := `SELECT f.id, a.id, a.name, a.rows, a.seats_in_row, a.airplane_type_id
FROM flights f
JOIN airplanes a ON a.id = f.airplane_id
WHERE f.id = ANY($1)`
	if lock {
		query += ` FOR SHARE OF f`
	}
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grids := make(map[int64]domain.Airplane, len(ids))
	for rows.Next() {
		var (
			flightID int64
			a        domain.Airplane
		)
		if err := rows.Scan(&flightID, &a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID); err != nil {
			return nil, err
		}
		grids[flightID] = a
	}
	return grids, rows.Err()
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`, flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt); err != nil {
		return translate(err)
	}
	if err := setCrew(ctx, tx, flight.ID, flight.CrewIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `UPDATE flights SET route_id=$1, airplane_id=$2, departure_time=$3, arrival_time=$4, updated_at=now()
		WHERE id=$5
		RETURNING created_at, updated_at`, flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime, flight.ID).
		Scan(&flight.CreatedAt, &flight.UpdatedAt); err != nil {
		return translate(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM flight_crew WHERE flight_id=$1`, flight.ID); err != nil {
		return err
	}
	if err := setCrew(ctx, tx, flight.ID, flight.CrewIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func setCrew(ctx context.Context, tx pgx.Tx, flightID int64, crewIDs []int64) error {
	for _, crewID := range crewIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO flight_crew (flight_id, crew_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, flightID, crewID); err != nil {
			return translate(err)
		}
	}
	return nil
}

// Delete removes the flight and, through ON DELETE CASCADE, its tickets.
// Orders that held those tickets are kept.
func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, `DELETE FROM flights WHERE id=$1`, id)
}

var _ FlightRepository = (*PGFlightRepository)(nil)
