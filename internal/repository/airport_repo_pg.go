package repository

import (
	"context"

	"github.com/Domenick1991/skybook/internal/domain"
)

type AirportRepository interface {
	List(ctx context.Context) ([]domain.Airport, error)
	GetByID(ctx context.Context, id int64) (*domain.AirportDetail, error)
	Create(ctx context.Context, airport *domain.Airport) error
	Update(ctx context.Context, airport *domain.Airport) error
	Delete(ctx context.Context, id int64) error
}

type PGAirportRepository struct {
	db DB
}

func NewAirportRepository(db DB) AirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, closest_big_city FROM airports ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.ID, &a.Name, &a.ClosestBigCity); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

func (r *PGAirportRepository) GetByID(ctx context.Context, id int64) (*domain.AirportDetail, error) {
	var d domain.AirportDetail
	err := r.db.QueryRow(ctx, `SELECT id, name, closest_big_city FROM airports WHERE id=$1`, id).
		Scan(&d.ID, &d.Name, &d.ClosestBigCity)
	if err != nil {
		return nil, translate(err)
	}

	rows, err := r.db.Query(ctx, routeSelect+` WHERE r.source_id=$1 ORDER BY r.distance DESC, r.id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	d.Routes = make([]domain.Route, 0)
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		d.Routes = append(d.Routes, *route)
	}
	return &d, rows.Err()
}

func (r *PGAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	return r.db.QueryRow(ctx, `INSERT INTO airports (name, closest_big_city) VALUES ($1, $2) RETURNING id`,
		airport.Name, airport.ClosestBigCity).Scan(&airport.ID)
}

func (r *PGAirportRepository) Update(ctx context.Context, airport *domain.Airport) error {
	res, err := r.db.Exec(ctx, `UPDATE airports SET name=$1, closest_big_city=$2 WHERE id=$3`,
		airport.Name, airport.ClosestBigCity, airport.ID)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the airport; routes referencing it cascade.
func (r *PGAirportRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, `DELETE FROM airports WHERE id=$1`, id)
}

func deleteByID(ctx context.Context, db DB, query string, id int64) error {
	res, err := db.Exec(ctx, query, id)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ AirportRepository = (*PGAirportRepository)(nil)
