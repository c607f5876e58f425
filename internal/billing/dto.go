package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListBillsRequest filters the bill list. Zero values disable a filter.
type ListBillsRequest struct {
	CustomerID *int64
	ServiceID  *int64
	Status     Status
	From       time.Time
	To         time.Time
	// Search matches a case-insensitive substring of the bill number.
	Search string
	Limit  int
}

// CostAttributeInput sets one boolean tag on a new cost line.
type CostAttributeInput struct {
	AttributeID int64  `json:"attribute_id"`
	Value       string `json:"value"`
}

// CostInput is one cost line on a bill write request.
type CostInput struct {
	CostTypeID int64                `json:"cost_type_id" validate:"required,gt=0"`
	SupplierID int64                `json:"supplier_id" validate:"required,gt=0"`
	Amount     decimal.Decimal      `json:"amount" validate:"required"`
	Date       time.Time            `json:"date"`
	InvoiceTag string               `json:"invoice_tag"`
	Attributes []CostAttributeInput `json:"attributes"`
}

// RevenueInput is one revenue row on a bill write request.
type RevenueInput struct {
	ServiceID int64           `json:"service_id" validate:"required,gt=0"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Date      time.Time       `json:"date"`
}

// CreateBillRequest creates a bill with its lines in one transaction.
type CreateBillRequest struct {
	Number        string         `json:"number" validate:"required"`
	CustomerID    int64          `json:"customer_id" validate:"required,gt=0"`
	ServiceID     int64          `json:"service_id" validate:"required,gt=0"`
	Date          time.Time      `json:"date"`
	Status        Status         `json:"status"`
	InvoiceNumber string         `json:"invoice_number"`
	PackageCount  int            `json:"package_count"`
	GoodsNote     string         `json:"goods_note"`
	Costs         []CostInput    `json:"costs"`
	Revenues      []RevenueInput `json:"revenues"`
}

// UpdateBillRequest updates bill header fields.
type UpdateBillRequest struct {
	Number        string    `json:"number" validate:"required"`
	CustomerID    int64     `json:"customer_id" validate:"required,gt=0"`
	ServiceID     int64     `json:"service_id" validate:"required,gt=0"`
	Date          time.Time `json:"date"`
	Status        Status    `json:"status"`
	InvoiceNumber string    `json:"invoice_number"`
	PackageCount  int       `json:"package_count"`
	GoodsNote     string    `json:"goods_note"`
}
