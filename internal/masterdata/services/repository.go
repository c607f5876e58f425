package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("service not found")

type Repository interface {
	List(ctx context.Context) ([]Service, error)
	Get(ctx context.Context, id int64) (Service, error)
	Create(ctx context.Context, svc Service) (Service, error)
	Update(ctx context.Context, id int64, svc Service) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Service, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, created_at, updated_at FROM services ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Service, error) {
	var s Service
	err := r.db.QueryRow(ctx, `SELECT id, name, description, created_at, updated_at FROM services WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Service{}, ErrNotFound
	}
	return s, err
}

func (r *repository) Create(ctx context.Context, svc Service) (Service, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO services (name, description, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		svc.Name, svc.Description, now, now).Scan(&svc.ID)
	if err != nil {
		return Service{}, err
	}
	svc.CreatedAt = now
	svc.UpdatedAt = now
	return svc, nil
}

func (r *repository) Update(ctx context.Context, id int64, svc Service) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE services SET name = $1, description = $2, updated_at = $3 WHERE id = $4`,
		svc.Name, svc.Description, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
