package repository

import (
	"context"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/jackc/pgx/v5"
)

type RouteRepository interface {
	List(ctx context.Context) ([]domain.Route, error)
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
	Create(ctx context.Context, route *domain.Route) error
	Update(ctx context.Context, route *domain.Route) error
	Delete(ctx context.Context, id int64) error
}

type PGRouteRepository struct {
	db DB
}

func NewRouteRepository(db DB) RouteRepository {
	return &PGRouteRepository{db: db}
}

const routeSelect = `SELECT r.id, r.distance,
	src.id, src.name, src.closest_big_city,
	dst.id, dst.name, dst.closest_big_city
FROM routes r
JOIN airports src ON src.id = r.source_id
JOIN airports dst ON dst.id = r.destination_id`

func scanRoute(row pgx.Row) (*domain.Route, error) {
	var (
		r        domain.Route
		src, dst domain.Airport
	)
	if err := row.Scan(&r.ID, &r.Distance, &src.ID, &src.Name, &src.ClosestBigCity, &dst.ID, &dst.Name, &dst.ClosestBigCity); err != nil {
		return nil, err
	}
	r.SourceID, r.DestinationID = src.ID, dst.ID
	r.Source, r.Destination = &src, &dst
	return &r, nil
}

func (r *PGRouteRepository) List(ctx context.Context) ([]domain.Route, error) {
	rows, err := r.db.Query(ctx, routeSelect+` ORDER BY r.distance DESC, r.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, *route)
	}
	return routes, rows.Err()
}

func (r *PGRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	route, err := scanRoute(r.db.QueryRow(ctx, routeSelect+` WHERE r.id=$1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return route, nil
}

func (r *PGRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	err := r.db.QueryRow(ctx, `INSERT INTO routes (source_id, destination_id, distance) VALUES ($1, $2, $3) RETURNING id`,
		route.SourceID, route.DestinationID, route.Distance).Scan(&route.ID)
	return translate(err)
}

func (r *PGRouteRepository) Update(ctx context.Context, route *domain.Route) error {
	res, err := r.db.Exec(ctx, `UPDATE routes SET source_id=$1, destination_id=$2, distance=$3 WHERE id=$4`,
		route.SourceID, route.DestinationID, route.Distance, route.ID)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the route; its flights and their tickets cascade.
func (r *PGRouteRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, `DELETE FROM routes WHERE id=$1`, id)
}

var _ RouteRepository = (*PGRouteRepository)(nil)
