package finance

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestComputeProfitSubtractsOnlyInvoiced(t *testing.T) {
	costs := CostBreakdown{
		Invoiced:     d(5_000_000),
		PaidOnBehalf: d(2_000_000),
		NoInvoice:    d(1_000_000),
	}
	result := ComputeProfit(d(8_500_000), costs)
	if !result.Profit.Equal(d(3_500_000)) {
		t.Fatalf("expected profit 3500000, got %s", result.Profit)
	}
	if !costs.Total().Equal(d(8_000_000)) {
		t.Fatalf("expected total costs 8000000, got %s", costs.Total())
	}
}

func TestComputeProfitMarginGuardsZeroRevenue(t *testing.T) {
	result := ComputeProfit(decimal.Zero, CostBreakdown{Invoiced: d(100)})
	if result.Margin != 0 {
		t.Fatalf("expected zero margin on zero revenue, got %f", result.Margin)
	}
	if !result.Profit.Equal(d(-100)) {
		t.Fatalf("expected profit -100, got %s", result.Profit)
	}
}

func TestComputeProfitMargin(t *testing.T) {
	result := ComputeProfit(d(1000), CostBreakdown{Invoiced: d(750)})
	if result.Margin != 25 {
		t.Fatalf("expected margin 25, got %f", result.Margin)
	}
}

func TestLineProfit(t *testing.T) {
	allocated := d(300_000)
	if got := LineProfit(CategoryInvoiced, allocated, d(120_000)); !got.Equal(d(180_000)) {
		t.Fatalf("invoiced line profit = %s, want 180000", got)
	}
	// Pass-through lines show allocated revenue untouched.
	if got := LineProfit(CategoryPaidOnBehalf, allocated, d(120_000)); !got.Equal(allocated) {
		t.Fatalf("paid-on-behalf line profit = %s, want %s", got, allocated)
	}
	if got := LineProfit(CategoryNoInvoice, allocated, d(120_000)); !got.Equal(allocated) {
		t.Fatalf("no-invoice line profit = %s, want %s", got, allocated)
	}
}

func TestBreakdownCosts(t *testing.T) {
	lines := []CostLine{
		{Amount: d(100), Category: CategoryInvoiced},
		{Amount: d(40), Category: CategoryPaidOnBehalf},
		{Amount: d(60), Category: CategoryInvoiced},
		{Amount: d(10), Category: CategoryNoInvoice},
	}
	b := BreakdownCosts(lines)
	if !b.Invoiced.Equal(d(160)) || !b.PaidOnBehalf.Equal(d(40)) || !b.NoInvoice.Equal(d(10)) {
		t.Fatalf("unexpected breakdown %+v", b)
	}
}
