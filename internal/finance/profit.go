package finance

import (
	"math"

	"github.com/shopspring/decimal"
)

// CostBreakdown sums a bucket's costs per category.
type CostBreakdown struct {
	Invoiced     decimal.Decimal `json:"invoiced"`
	PaidOnBehalf decimal.Decimal `json:"paid_on_behalf"`
	NoInvoice    decimal.Decimal `json:"no_invoice"`
}

// Add accumulates one cost amount under its category.
func (b *CostBreakdown) Add(category Category, amount decimal.Decimal) {
	switch category {
	case CategoryPaidOnBehalf:
		b.PaidOnBehalf = b.PaidOnBehalf.Add(amount)
	case CategoryNoInvoice:
		b.NoInvoice = b.NoInvoice.Add(amount)
	default:
		b.Invoiced = b.Invoiced.Add(amount)
	}
}

// Total is the sum across all three categories, shown on reports. Only the
// invoiced portion ever reduces profit.
func (b CostBreakdown) Total() decimal.Decimal {
	return b.Invoiced.Add(b.PaidOnBehalf).Add(b.NoInvoice)
}

// BreakdownCosts buckets classified cost lines by category.
func BreakdownCosts(costs []CostLine) CostBreakdown {
	var b CostBreakdown
	for _, c := range costs {
		b.Add(c.Category, c.Amount)
	}
	return b
}

// ProfitResult pairs profit with its margin over revenue.
type ProfitResult struct {
	Profit decimal.Decimal
	Margin float64
}

// ComputeProfit applies the profit rule: revenue minus invoiced costs.
// Pass-through categories never reduce profit. Margin is zero when revenue
// is zero, never NaN or Inf.
func ComputeProfit(revenue decimal.Decimal, costs CostBreakdown) ProfitResult {
	profit := revenue.Sub(costs.Invoiced)
	result := ProfitResult{Profit: profit}
	if revenue.IsPositive() {
		result.Margin = round2(profit.Div(revenue).InexactFloat64() * 100)
	}
	return result
}

// LineProfit computes the profit shown on one detail-report row. An invoiced
// line nets its cost against the allocated revenue; pass-through lines show
// the allocated revenue untouched. That is the report's display convention.
func LineProfit(category Category, allocated, amount decimal.Decimal) decimal.Decimal {
	if category == CategoryInvoiced {
		return allocated.Sub(amount)
	}
	return allocated
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
