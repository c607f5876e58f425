package costtypes

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("cost type not found")

type Repository interface {
	List(ctx context.Context) ([]CostType, error)
	Get(ctx context.Context, id int64) (CostType, error)
	Create(ctx context.Context, ct CostType) (CostType, error)
	Update(ctx context.Context, id int64, ct CostType) error
	Delete(ctx context.Context, id int64) error
	AddAttribute(ctx context.Context, costTypeID int64, name string) (Attribute, error)
	DeleteAttribute(ctx context.Context, attributeID int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]CostType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at, updated_at FROM cost_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []CostType
	index := make(map[int64]int)
	for rows.Next() {
		var ct CostType
		if err := rows.Scan(&ct.ID, &ct.Name, &ct.CreatedAt, &ct.UpdatedAt); err != nil {
			return nil, err
		}
		index[ct.ID] = len(types)
		types = append(types, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	attrRows, err := r.db.Query(ctx, `SELECT id, cost_type_id, name FROM cost_type_attributes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer attrRows.Close()

	for attrRows.Next() {
		var a Attribute
		if err := attrRows.Scan(&a.ID, &a.CostTypeID, &a.Name); err != nil {
			return nil, err
		}
		if pos, ok := index[a.CostTypeID]; ok {
			types[pos].Attributes = append(types[pos].Attributes, a)
		}
	}
	return types, attrRows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (CostType, error) {
	var ct CostType
	err := r.db.QueryRow(ctx, `SELECT id, name, created_at, updated_at FROM cost_types WHERE id = $1`, id).
		Scan(&ct.ID, &ct.Name, &ct.CreatedAt, &ct.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return CostType{}, ErrNotFound
	}
	if err != nil {
		return CostType{}, err
	}

	rows, err := r.db.Query(ctx, `SELECT id, cost_type_id, name FROM cost_type_attributes WHERE cost_type_id = $1 ORDER BY id`, id)
	if err != nil {
		return CostType{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var a Attribute
		if err := rows.Scan(&a.ID, &a.CostTypeID, &a.Name); err != nil {
			return CostType{}, err
		}
		ct.Attributes = append(ct.Attributes, a)
	}
	return ct, rows.Err()
}

func (r *repository) Create(ctx context.Context, ct CostType) (CostType, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO cost_types (name, created_at, updated_at) VALUES ($1, $2, $3) RETURNING id`,
		ct.Name, now, now).Scan(&ct.ID)
	if err != nil {
		return CostType{}, err
	}
	ct.CreatedAt = now
	ct.UpdatedAt = now
	return ct, nil
}

func (r *repository) Update(ctx context.Context, id int64, ct CostType) error {
	tag, err := r.db.Exec(ctx, `UPDATE cost_types SET name = $1, updated_at = $2 WHERE id = $3`, ct.Name, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cost_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) AddAttribute(ctx context.Context, costTypeID int64, name string) (Attribute, error) {
	a := Attribute{CostTypeID: costTypeID, Name: name}
	err := r.db.QueryRow(ctx,
		`INSERT INTO cost_type_attributes (cost_type_id, name) VALUES ($1, $2) RETURNING id`,
		costTypeID, name).Scan(&a.ID)
	if err != nil {
		return Attribute{}, err
	}
	return a, nil
}

func (r *repository) DeleteAttribute(ctx context.Context, attributeID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cost_type_attributes WHERE id = $1`, attributeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
