package billing

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freightwise/freightwise/internal/finance"
	"github.com/freightwise/freightwise/internal/platform/db"
)

// ErrNotFound indicates no bill row matched.
var ErrNotFound = errors.New("bill not found")

type Repository interface {
	// Get returns one bill hydrated with costs, attribute values and revenues.
	Get(ctx context.Context, id int64) (*Bill, error)
	// List returns filtered bills, each hydrated with its lines.
	List(ctx context.Context, req ListBillsRequest) ([]Bill, error)
	Create(ctx context.Context, req CreateBillRequest) (int64, error)
	Update(ctx context.Context, id int64, req UpdateBillRequest) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const billColumns = `b.id, b.number, b.customer_id, c.name, b.service_id, s.name, b.date, b.status,
	b.invoice_number, b.package_count, b.goods_note, b.created_at, b.updated_at`

const billJoins = ` FROM bills b
	JOIN customers c ON c.id = b.customer_id
	JOIN services s ON s.id = b.service_id`

func (r *repository) Get(ctx context.Context, id int64) (*Bill, error) {
	query := `SELECT ` + billColumns + billJoins + ` WHERE b.id = $1`
	b, err := scanBill(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := r.loadLines(ctx, []*Bill{&b}); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) List(ctx context.Context, req ListBillsRequest) ([]Bill, error) {
	query := `SELECT ` + billColumns + billJoins + ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if req.CustomerID != nil {
		argCount++
		query += ` AND b.customer_id = $` + strconv.Itoa(argCount)
		args = append(args, *req.CustomerID)
	}
	if req.ServiceID != nil {
		argCount++
		query += ` AND b.service_id = $` + strconv.Itoa(argCount)
		args = append(args, *req.ServiceID)
	}
	if req.Status != "" {
		argCount++
		query += ` AND b.status = $` + strconv.Itoa(argCount)
		args = append(args, string(req.Status))
	}
	if !req.From.IsZero() {
		argCount++
		query += ` AND b.date >= $` + strconv.Itoa(argCount)
		args = append(args, req.From)
	}
	if !req.To.IsZero() {
		argCount++
		query += ` AND b.date <= $` + strconv.Itoa(argCount)
		args = append(args, req.To)
	}
	if req.Search != "" {
		argCount++
		query += ` AND b.number ILIKE $` + strconv.Itoa(argCount)
		args = append(args, "%"+req.Search+"%")
	}

	query += ` ORDER BY b.date DESC, b.id DESC`
	if req.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, req.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*Bill, len(bills))
	for i := range bills {
		refs[i] = &bills[i]
	}
	if err := r.loadLines(ctx, refs); err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *repository) Create(ctx context.Context, req CreateBillRequest) (int64, error) {
	var billID int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		now := time.Now()
		date := req.Date
		if date.IsZero() {
			date = now
		}
		status := req.Status
		if status == "" {
			status = StatusPending
		}
		err := tx.QueryRow(ctx,
			`INSERT INTO bills (number, customer_id, service_id, date, status, invoice_number, package_count, goods_note, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9) RETURNING id`,
			req.Number, req.CustomerID, req.ServiceID, date, string(status), req.InvoiceNumber, req.PackageCount, req.GoodsNote, now,
		).Scan(&billID)
		if err != nil {
			return err
		}

		for _, cost := range req.Costs {
			costDate := cost.Date
			if costDate.IsZero() {
				costDate = date
			}
			var costID int64
			err := tx.QueryRow(ctx,
				`INSERT INTO costs (bill_id, cost_type_id, supplier_id, amount, date, invoice_tag)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
				billID, cost.CostTypeID, cost.SupplierID, cost.Amount, costDate, cost.InvoiceTag,
			).Scan(&costID)
			if err != nil {
				return err
			}
			for _, attr := range cost.Attributes {
				if _, err := tx.Exec(ctx,
					`INSERT INTO cost_attribute_values (cost_id, attribute_id, value) VALUES ($1, $2, $3)`,
					costID, attr.AttributeID, attr.Value,
				); err != nil {
					return err
				}
			}
		}

		for _, rev := range req.Revenues {
			revDate := rev.Date
			if revDate.IsZero() {
				revDate = date
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO revenues (bill_id, service_id, amount, date) VALUES ($1, $2, $3, $4)`,
				billID, rev.ServiceID, rev.Amount, revDate,
			); err != nil {
				return err
			}
		}
		return nil
	})
	return billID, err
}

func (r *repository) Update(ctx context.Context, id int64, req UpdateBillRequest) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE bills SET number = $1, customer_id = $2, service_id = $3, date = $4, status = $5,
			invoice_number = $6, package_count = $7, goods_note = $8, updated_at = $9 WHERE id = $10`,
		req.Number, req.CustomerID, req.ServiceID, req.Date, string(req.Status),
		req.InvoiceNumber, req.PackageCount, req.GoodsNote, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM cost_attribute_values WHERE cost_id IN (SELECT id FROM costs WHERE bill_id = $1)`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM costs WHERE bill_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM revenues WHERE bill_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM bills WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// loadLines hydrates costs, their attribute values and revenues for the
// given bills in three batched queries.
func (r *repository) loadLines(ctx context.Context, bills []*Bill) error {
	if len(bills) == 0 {
		return nil
	}
	billIDs := make([]int64, 0, len(bills))
	byID := make(map[int64]*Bill, len(bills))
	for _, b := range bills {
		billIDs = append(billIDs, b.ID)
		byID[b.ID] = b
	}

	costRows, err := r.pool.Query(ctx,
		`SELECT co.id, co.bill_id, co.cost_type_id, ct.name, co.supplier_id, sp.name, co.amount, co.date, co.invoice_tag
		FROM costs co
		JOIN cost_types ct ON ct.id = co.cost_type_id
		JOIN suppliers sp ON sp.id = co.supplier_id
		WHERE co.bill_id = ANY($1)
		ORDER BY co.id`, billIDs)
	if err != nil {
		return err
	}
	defer costRows.Close()

	var costs []Cost
	costIndex := make(map[int64]int)
	for costRows.Next() {
		var c Cost
		if err := costRows.Scan(&c.ID, &c.BillID, &c.CostTypeID, &c.CostTypeName, &c.SupplierID, &c.SupplierName, &c.Amount, &c.Date, &c.InvoiceTag); err != nil {
			return err
		}
		costIndex[c.ID] = len(costs)
		costs = append(costs, c)
	}
	if err := costRows.Err(); err != nil {
		return err
	}

	if len(costs) > 0 {
		costIDs := make([]int64, len(costs))
		for i, c := range costs {
			costIDs[i] = c.ID
		}
		attrRows, err := r.pool.Query(ctx,
			`SELECT av.cost_id, a.name, av.value
			FROM cost_attribute_values av
			JOIN cost_type_attributes a ON a.id = av.attribute_id
			WHERE av.cost_id = ANY($1)`, costIDs)
		if err != nil {
			return err
		}
		defer attrRows.Close()

		for attrRows.Next() {
			var costID int64
			var av finance.AttributeValue
			if err := attrRows.Scan(&costID, &av.AttributeName, &av.Value); err != nil {
				return err
			}
			if pos, ok := costIndex[costID]; ok {
				costs[pos].Attributes = append(costs[pos].Attributes, av)
			}
		}
		if err := attrRows.Err(); err != nil {
			return err
		}
	}

	for i := range costs {
		bill := byID[costs[i].BillID]
		bill.Costs = append(bill.Costs, costs[i])
	}

	revRows, err := r.pool.Query(ctx,
		`SELECT id, bill_id, service_id, amount, date FROM revenues WHERE bill_id = ANY($1) ORDER BY id`, billIDs)
	if err != nil {
		return err
	}
	defer revRows.Close()

	for revRows.Next() {
		var rev Revenue
		if err := revRows.Scan(&rev.ID, &rev.BillID, &rev.ServiceID, &rev.Amount, &rev.Date); err != nil {
			return err
		}
		byID[rev.BillID].Revenues = append(byID[rev.BillID].Revenues, rev)
	}
	return revRows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBill(row rowScanner) (Bill, error) {
	var b Bill
	var status string
	err := row.Scan(&b.ID, &b.Number, &b.CustomerID, &b.CustomerName, &b.ServiceID, &b.ServiceName,
		&b.Date, &status, &b.InvoiceNumber, &b.PackageCount, &b.GoodsNote, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return Bill{}, err
	}
	b.Status = Status(status)
	return b, nil
}
