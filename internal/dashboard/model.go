package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/freightwise/freightwise/internal/finance"
	"github.com/freightwise/freightwise/internal/resilient"
)

// Summary holds the headline figures for the selected window. Trend fields
// compare against the window of equal length immediately before it.
type Summary struct {
	BillCount        int             `json:"bill_count"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	InvoicedCost     decimal.Decimal `json:"invoiced_cost"`
	PaidOnBehalfCost decimal.Decimal `json:"paid_on_behalf_cost"`
	NoInvoiceCost    decimal.Decimal `json:"no_invoice_cost"`
	Profit           decimal.Decimal `json:"profit"`
	Margin           float64         `json:"margin"`
	RevenueTrendPct  float64         `json:"revenue_trend_pct"`
	ProfitTrendPct   float64         `json:"profit_trend_pct"`
}

// Overview is the full dashboard payload.
type Overview struct {
	Timeframe    finance.Timeframe `json:"timeframe"`
	From         time.Time         `json:"from"`
	To           time.Time         `json:"to"`
	Summary      Summary           `json:"summary"`
	TopCustomers []finance.Rollup  `json:"top_customers"`
	TopServices  []finance.Rollup  `json:"top_services"`
	Source       resilient.Source  `json:"source"`
}
