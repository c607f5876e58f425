package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/freightwise/freightwise/internal/finance"
)

// CustomerReport rolls bills up per customer over the window. Revenue comes
// from the price book so the report is meaningful before revenue rows exist.
type CustomerReport struct {
	Timeframe finance.Timeframe `json:"timeframe"`
	From      time.Time         `json:"from"`
	To        time.Time         `json:"to"`
	Rows      []finance.Rollup  `json:"rows"`
	Totals    ReportTotals      `json:"totals"`
}

// SupplierReport rolls cost lines up per supplier, optionally narrowed to
// one cost type.
type SupplierReport struct {
	Timeframe  finance.Timeframe        `json:"timeframe"`
	From       time.Time                `json:"from"`
	To         time.Time                `json:"to"`
	CostTypeID *int64                   `json:"cost_type_id,omitempty"`
	Rows       []finance.SupplierRollup `json:"rows"`
	TotalCost  decimal.Decimal          `json:"total_cost"`
}

// ProfitLossReport is the monthly profit-and-loss series, chronological.
type ProfitLossReport struct {
	From   time.Time              `json:"from"`
	To     time.Time              `json:"to"`
	Rows   []finance.PeriodRollup `json:"rows"`
	Totals ReportTotals           `json:"totals"`
}

// ReportTotals is the grand-total line under a report.
type ReportTotals struct {
	BillCount    int             `json:"bill_count"`
	Revenue      decimal.Decimal `json:"revenue"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	InvoicedCost decimal.Decimal `json:"invoiced_cost"`
	Profit       decimal.Decimal `json:"profit"`
	Margin       float64         `json:"margin"`
}

// RowKind distinguishes the three row shapes of the bill detail report.
type RowKind string

const (
	RowCost    RowKind = "cost"
	RowSummary RowKind = "summary"
	RowTotal   RowKind = "total"
)

// BillDetailRow is one printed line of the bill detail report. Cost rows
// carry an even share of the bill's revenue; each bill closes with a summary
// row and the report closes with a grand-total row.
type BillDetailRow struct {
	Kind         RowKind          `json:"kind"`
	BillNumber   string           `json:"bill_number,omitempty"`
	Date         time.Time        `json:"date,omitempty"`
	CostTypeName string           `json:"cost_type_name,omitempty"`
	SupplierName string           `json:"supplier_name,omitempty"`
	Category     finance.Category `json:"category,omitempty"`
	Cost         decimal.Decimal  `json:"cost"`
	Revenue      decimal.Decimal  `json:"revenue"`
	Profit       decimal.Decimal  `json:"profit"`
}

// BillDetailReport lists every bill of one customer in the window, line by
// line.
type BillDetailReport struct {
	CustomerID   int64           `json:"customer_id"`
	CustomerName string          `json:"customer_name,omitempty"`
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	Rows         []BillDetailRow `json:"rows"`
}
