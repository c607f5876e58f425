package pricing

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("price not found")

type Repository interface {
	ListPrices(ctx context.Context, customerID *int64) ([]Price, error)
	UpsertPrice(ctx context.Context, price Price) (Price, error)
	DeletePrice(ctx context.Context, id int64) error

	ListCostPrices(ctx context.Context, customerID *int64) ([]CostPrice, error)
	UpsertCostPrice(ctx context.Context, price CostPrice) (CostPrice, error)
	DeleteCostPrice(ctx context.Context, id int64) error

	// LoadBook snapshots the full cost-price list for revenue inference.
	LoadBook(ctx context.Context) (Book, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) ListPrices(ctx context.Context, customerID *int64) ([]Price, error) {
	query := `SELECT id, customer_id, service_id, amount, created_at, updated_at FROM prices`
	args := []interface{}{}
	if customerID != nil {
		query += ` WHERE customer_id = $1`
		args = append(args, *customerID)
	}
	query += ` ORDER BY customer_id, service_id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []Price
	for rows.Next() {
		var p Price
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.ServiceID, &p.Amount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

func (r *repository) UpsertPrice(ctx context.Context, price Price) (Price, error) {
	// One row per (customer, service); re-quoting replaces the amount.
	query := `INSERT INTO prices (customer_id, service_id, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (customer_id, service_id) DO UPDATE SET amount = EXCLUDED.amount, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	now := time.Now()
	if err := r.db.QueryRow(ctx, query, price.CustomerID, price.ServiceID, price.Amount, now).Scan(&price.ID, &price.CreatedAt); err != nil {
		return Price{}, err
	}
	price.UpdatedAt = now
	return price, nil
}

func (r *repository) DeletePrice(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM prices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ListCostPrices(ctx context.Context, customerID *int64) ([]CostPrice, error) {
	query := `SELECT id, customer_id, service_id, cost_type_id, amount, created_at, updated_at FROM cost_prices`
	args := []interface{}{}
	if customerID != nil {
		query += ` WHERE customer_id = $1`
		args = append(args, *customerID)
	}
	query += ` ORDER BY customer_id, service_id, cost_type_id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []CostPrice
	for rows.Next() {
		var p CostPrice
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.ServiceID, &p.CostTypeID, &p.Amount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

func (r *repository) UpsertCostPrice(ctx context.Context, price CostPrice) (CostPrice, error) {
	query := `INSERT INTO cost_prices (customer_id, service_id, cost_type_id, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (customer_id, service_id, cost_type_id) DO UPDATE SET amount = EXCLUDED.amount, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	now := time.Now()
	if err := r.db.QueryRow(ctx, query, price.CustomerID, price.ServiceID, price.CostTypeID, price.Amount, now).Scan(&price.ID, &price.CreatedAt); err != nil {
		return CostPrice{}, err
	}
	price.UpdatedAt = now
	return price, nil
}

func (r *repository) DeleteCostPrice(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cost_prices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) LoadBook(ctx context.Context) (Book, error) {
	rows, err := r.db.Query(ctx, `SELECT customer_id, service_id, cost_type_id, amount FROM cost_prices`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	book := make(Book)
	for rows.Next() {
		var customerID, serviceID, costTypeID int64
		var amount decimal.Decimal
		if err := rows.Scan(&customerID, &serviceID, &costTypeID, &amount); err != nil {
			return nil, err
		}
		book.Put(customerID, serviceID, costTypeID, amount)
	}
	return book, rows.Err()
}
