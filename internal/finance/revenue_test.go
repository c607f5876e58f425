package finance

import (
	"testing"

	"github.com/shopspring/decimal"
)

type stubPriceBook map[[3]int64]decimal.Decimal

func (s stubPriceBook) CostPrice(customerID, serviceID, costTypeID int64) (decimal.Decimal, bool) {
	price, ok := s[[3]int64{customerID, serviceID, costTypeID}]
	return price, ok
}

func TestResolveRevenueDirect(t *testing.T) {
	bill := BillInput{DirectRevenue: d(900_000)}
	if got := ResolveRevenue(bill, RevenueDirect, nil); !got.Equal(d(900_000)) {
		t.Fatalf("direct revenue = %s, want 900000", got)
	}
}

func TestResolveRevenuePriced(t *testing.T) {
	bill := BillInput{
		CustomerID: 1,
		ServiceID:  2,
		Costs: []CostLine{
			{CostTypeID: 10, Amount: d(5_000_000), Category: CategoryInvoiced},
			{CostTypeID: 11, Amount: d(2_000_000), Category: CategoryPaidOnBehalf},
		},
	}
	prices := stubPriceBook{
		{1, 2, 10}: d(6_000_000),
		{1, 2, 11}: d(2_500_000),
	}
	if got := ResolveRevenue(bill, RevenuePriced, prices); !got.Equal(d(8_500_000)) {
		t.Fatalf("priced revenue = %s, want 8500000", got)
	}
}

func TestResolveRevenuePricedMissingQuoteContributesZero(t *testing.T) {
	bill := BillInput{
		CustomerID: 1,
		ServiceID:  2,
		Costs: []CostLine{
			{CostTypeID: 10, Amount: d(100)},
			{CostTypeID: 99, Amount: d(200)},
		},
	}
	prices := stubPriceBook{{1, 2, 10}: d(500)}
	if got := ResolveRevenue(bill, RevenuePriced, prices); !got.Equal(d(500)) {
		t.Fatalf("priced revenue = %s, want 500", got)
	}
}

func TestSplitEvenly(t *testing.T) {
	if got := SplitEvenly(d(900_000), 3); !got.Equal(d(300_000)) {
		t.Fatalf("split = %s, want 300000", got)
	}
	// A bill with no cost lines keeps the full amount for its synthetic row.
	if got := SplitEvenly(d(900_000), 0); !got.Equal(d(900_000)) {
		t.Fatalf("zero-cost split = %s, want 900000", got)
	}
}

func TestEndToEndPricedBill(t *testing.T) {
	bill := BillInput{
		CustomerID: 7,
		ServiceID:  3,
		Costs: []CostLine{
			{CostTypeID: 10, Amount: d(5_000_000), Category: CategoryInvoiced},
			{CostTypeID: 11, Amount: d(2_000_000), Category: CategoryPaidOnBehalf},
		},
	}
	prices := stubPriceBook{
		{7, 3, 10}: d(6_000_000),
		{7, 3, 11}: d(2_500_000),
	}

	revenue := ResolveRevenue(bill, RevenuePriced, prices)
	breakdown := BreakdownCosts(bill.Costs)
	result := ComputeProfit(revenue, breakdown)

	if !revenue.Equal(d(8_500_000)) {
		t.Fatalf("total revenue = %s, want 8500000", revenue)
	}
	if !breakdown.Invoiced.Equal(d(5_000_000)) {
		t.Fatalf("invoiced cost = %s, want 5000000", breakdown.Invoiced)
	}
	if !result.Profit.Equal(d(3_500_000)) {
		t.Fatalf("profit = %s, want 3500000", result.Profit)
	}
}
