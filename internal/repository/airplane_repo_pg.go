package repository

import (
	"context"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/jackc/pgx/v5"
)

type AirplaneRepository interface {
	ListTypes(ctx context.Context) ([]domain.AirplaneType, error)
	GetType(ctx context.Context, id int64) (*domain.AirplaneType, error)
	CreateType(ctx context.Context, t *domain.AirplaneType) error
	UpdateType(ctx context.Context, t *domain.AirplaneType) error
	DeleteType(ctx context.Context, id int64) error

	List(ctx context.Context) ([]domain.Airplane, error)
	GetByID(ctx context.Context, id int64) (*domain.Airplane, error)
	Create(ctx context.Context, airplane *domain.Airplane) error
	Update(ctx context.Context, airplane *domain.Airplane) error
	SetImage(ctx context.Context, id int64, image string) error
	Delete(ctx context.Context, id int64) error
}

type PGAirplaneRepository struct {
	db DB
}

func NewAirplaneRepository(db DB) AirplaneRepository {
	return &PGAirplaneRepository{db: db}
}

func (r *PGAirplaneRepository) ListTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM airplane_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]domain.AirplaneType, 0)
	for rows.Next() {
		var t domain.AirplaneType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *PGAirplaneRepository) GetType(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	var t domain.AirplaneType
	if err := r.db.QueryRow(ctx, `SELECT id, name FROM airplane_types WHERE id=$1`, id).Scan(&t.ID, &t.Name); err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *PGAirplaneRepository) CreateType(ctx context.Context, t *domain.AirplaneType) error {
	return r.db.QueryRow(ctx, `INSERT INTO airplane_types (name) VALUES ($1) RETURNING id`, t.Name).Scan(&t.ID)
}

func (r *PGAirplaneRepository) UpdateType(ctx context.Context, t *domain.AirplaneType) error {
	res, err := r.db.Exec(ctx, `UPDATE airplane_types SET name=$1 WHERE id=$2`, t.Name, t.ID)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteType removes the type together with its airplanes.
func (r *PGAirplaneRepository) DeleteType(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, `DELETE FROM airplane_types WHERE id=$1`, id)
}

const airplaneSelect = `SELECT a.id, a.name, a.rows, a.seats_in_row, a.image, t.id, t.name
FROM airplanes a
JOIN airplane_types t ON t.id = a.airplane_type_id`

func scanAirplane(row pgx.Row) (*domain.Airplane, error) {
	var (
		a domain.Airplane
		t domain.AirplaneType
	)
	if err := row.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.Image, &t.ID, &t.Name); err != nil {
		return nil, err
	}
	a.AirplaneTypeID = t.ID
	a.AirplaneType = &t
	return &a, nil
}

func (r *PGAirplaneRepository) List(ctx context.Context) ([]domain.Airplane, error) {
	rows, err := r.db.Query(ctx, airplaneSelect+` ORDER BY a.name, a.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airplanes := make([]domain.Airplane, 0)
	for rows.Next() {
		a, err := scanAirplane(rows)
		if err != nil {
			return nil, err
		}
		airplanes = append(airplanes, *a)
	}
	return airplanes, rows.Err()
}

func (r *PGAirplaneRepository) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	a, err := scanAirplane(r.db.QueryRow(ctx, airplaneSelect+` WHERE a.id=$1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return a, nil
}

func (r *PGAirplaneRepository) Create(ctx context.Context, airplane *domain.Airplane) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airplanes (name, rows, seats_in_row, airplane_type_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		airplane.Name, airplane.Rows, airplane.SeatsInRow, airplane.AirplaneTypeID).Scan(&airplane.ID)
	return translate(err)
}

func (r *PGAirplaneRepository) Update(ctx context.Context, airplane *domain.Airplane) error {
	res, err := r.db.Exec(ctx, `UPDATE airplanes SET name=$1, rows=$2, seats_in_row=$3, airplane_type_id=$4 WHERE id=$5`,
		airplane.Name, airplane.Rows, airplane.SeatsInRow, airplane.AirplaneTypeID, airplane.ID)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGAirplaneRepository) SetImage(ctx context.Context, id int64, image string) error {
	res, err := r.db.Exec(ctx, `UPDATE airplanes SET image=$1 WHERE id=$2`, image, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the airplane; its flights and their tickets cascade.
func (r *PGAirplaneRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, `DELETE FROM airplanes WHERE id=$1`, id)
}

var _ AirplaneRepository = (*PGAirplaneRepository)(nil)
