package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostLine is a cost record as the engine sees it: joined with its dimension
// names and already classified.
type CostLine struct {
	ID           int64
	BillID       int64
	CostTypeID   int64
	CostTypeName string
	SupplierID   int64
	SupplierName string
	Amount       decimal.Decimal
	Date         time.Time
	Category     Category
}

// BillInput groups everything the engine needs to know about one bill.
// DirectRevenue is the sum of recorded revenue rows; the priced strategy
// ignores it and consults the price book instead.
type BillInput struct {
	ID            int64
	Number        string
	CustomerID    int64
	CustomerName  string
	ServiceID     int64
	ServiceName   string
	Date          time.Time
	Costs         []CostLine
	DirectRevenue decimal.Decimal
}

// PriceBook resolves the standing price quoted per customer, service and
// cost type. A missing quote reports ok=false and contributes zero revenue.
type PriceBook interface {
	CostPrice(customerID, serviceID, costTypeID int64) (decimal.Decimal, bool)
}

// FilterBills keeps the bills whose date falls inside the inclusive range.
// Zero bounds disable the corresponding side of the filter.
func FilterBills(bills []BillInput, from, to time.Time) []BillInput {
	out := make([]BillInput, 0, len(bills))
	for _, b := range bills {
		if !from.IsZero() && b.Date.Before(from) {
			continue
		}
		if !to.IsZero() && b.Date.After(to) {
			continue
		}
		out = append(out, b)
	}
	return out
}
