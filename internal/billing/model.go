package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/freightwise/freightwise/internal/finance"
)

// Status tracks a bill through its lifecycle.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Bill is one logistics job billed to a customer.
type Bill struct {
	ID            int64     `json:"id"`
	Number        string    `json:"number"`
	CustomerID    int64     `json:"customer_id"`
	CustomerName  string    `json:"customer_name,omitempty"`
	ServiceID     int64     `json:"service_id"`
	ServiceName   string    `json:"service_name,omitempty"`
	Date          time.Time `json:"date"`
	Status        Status    `json:"status"`
	InvoiceNumber string    `json:"invoice_number,omitempty"`
	PackageCount  int       `json:"package_count,omitempty"`
	GoodsNote     string    `json:"goods_note,omitempty"`
	Costs         []Cost    `json:"costs,omitempty"`
	Revenues      []Revenue `json:"revenues,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Cost is one expense line on a bill. InvoiceTag is the legacy free-text
// classification field kept on the row; the engine classifies from the
// attribute values only.
type Cost struct {
	ID           int64                    `json:"id"`
	BillID       int64                    `json:"bill_id"`
	CostTypeID   int64                    `json:"cost_type_id"`
	CostTypeName string                   `json:"cost_type_name,omitempty"`
	SupplierID   int64                    `json:"supplier_id"`
	SupplierName string                   `json:"supplier_name,omitempty"`
	Amount       decimal.Decimal          `json:"amount"`
	Date         time.Time                `json:"date"`
	InvoiceTag   string                   `json:"invoice_tag,omitempty"`
	Attributes   []finance.AttributeValue `json:"attributes,omitempty"`
}

// Revenue is one recorded revenue row on a bill.
type Revenue struct {
	ID        int64           `json:"id"`
	BillID    int64           `json:"bill_id"`
	ServiceID int64           `json:"service_id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
}

// Totals are the computed figures attached to bill views. Revenue comes
// from the cost-price list; only invoiced costs reduce profit.
type Totals struct {
	TotalCost         decimal.Decimal `json:"total_cost"`
	TotalInvoicedCost decimal.Decimal `json:"total_invoiced_cost"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	Profit            decimal.Decimal `json:"profit"`
	Margin            float64         `json:"margin"`
}

// BillWithTotals is the bill view returned by the read endpoints.
type BillWithTotals struct {
	Bill
	Totals Totals `json:"totals"`
}

// Input converts a bill to the engine's record shape, classifying each cost
// from its attribute values.
func (b Bill) Input() finance.BillInput {
	in := finance.BillInput{
		ID:           b.ID,
		Number:       b.Number,
		CustomerID:   b.CustomerID,
		CustomerName: b.CustomerName,
		ServiceID:    b.ServiceID,
		ServiceName:  b.ServiceName,
		Date:         b.Date,
	}
	for _, c := range b.Costs {
		in.Costs = append(in.Costs, finance.CostLine{
			ID:           c.ID,
			BillID:       c.BillID,
			CostTypeID:   c.CostTypeID,
			CostTypeName: c.CostTypeName,
			SupplierID:   c.SupplierID,
			SupplierName: c.SupplierName,
			Amount:       c.Amount,
			Date:         c.Date,
			Category:     finance.Classify(c.Attributes),
		})
	}
	for _, r := range b.Revenues {
		in.DirectRevenue = in.DirectRevenue.Add(r.Amount)
	}
	return in
}
