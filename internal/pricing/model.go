package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price is a flat quote per (customer, service). One row per pair.
type Price struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customer_id"`
	ServiceID  int64           `json:"service_id"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CostPrice is a standing quote per (customer, service, cost type), used to
// infer a bill's revenue before any revenue rows are recorded. One row per
// triple.
type CostPrice struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customer_id"`
	ServiceID  int64           `json:"service_id"`
	CostTypeID int64           `json:"cost_type_id"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
