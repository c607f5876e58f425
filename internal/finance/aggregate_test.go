package finance

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func billOn(day string, customerID int64, customerName string, revenue int64, costs ...CostLine) BillInput {
	date, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return BillInput{
		CustomerID:    customerID,
		CustomerName:  customerName,
		Date:          date,
		Costs:         costs,
		DirectRevenue: decimal.NewFromInt(revenue),
	}
}

func TestAggregateByCustomerSortsByProfit(t *testing.T) {
	bills := []BillInput{
		billOn("2025-03-01", 1, "Alpha", 1000, CostLine{Amount: d(800), Category: CategoryInvoiced}),
		billOn("2025-03-02", 2, "Beta", 2000, CostLine{Amount: d(500), Category: CategoryInvoiced}),
		billOn("2025-03-03", 1, "Alpha", 500),
	}
	rollups := AggregateByCustomer(bills, RevenueDirect, nil, time.Time{}, time.Time{})
	if len(rollups) != 2 {
		t.Fatalf("expected 2 rollups, got %d", len(rollups))
	}
	if rollups[0].Name != "Beta" {
		t.Fatalf("expected Beta first, got %s", rollups[0].Name)
	}
	if !rollups[0].Profit.Equal(d(1500)) {
		t.Fatalf("Beta profit = %s, want 1500", rollups[0].Profit)
	}
	if rollups[1].BillCount != 2 {
		t.Fatalf("Alpha bill count = %d, want 2", rollups[1].BillCount)
	}
}

func TestAggregatePercentagesSumToHundred(t *testing.T) {
	bills := []BillInput{
		billOn("2025-01-01", 1, "A", 300, CostLine{Amount: d(100), Category: CategoryInvoiced}),
		billOn("2025-01-02", 2, "B", 700, CostLine{Amount: d(200), Category: CategoryInvoiced}),
		billOn("2025-01-03", 3, "C", 900, CostLine{Amount: d(300), Category: CategoryInvoiced}),
	}
	rollups := AggregateByCustomer(bills, RevenueDirect, nil, time.Time{}, time.Time{})
	sum := 0.0
	for _, r := range rollups {
		sum += r.Percentage
	}
	if math.Abs(sum-100) > 0.05 {
		t.Fatalf("percentages sum to %f, want 100", sum)
	}
}

func TestAggregateZeroDenominatorYieldsZeroShares(t *testing.T) {
	bills := []BillInput{
		billOn("2025-01-01", 1, "A", 0),
		billOn("2025-01-02", 2, "B", 0),
	}
	rollups := AggregateByCustomer(bills, RevenueDirect, nil, time.Time{}, time.Time{})
	for _, r := range rollups {
		if r.Percentage != 0 {
			t.Fatalf("expected zero share, got %f for %s", r.Percentage, r.Name)
		}
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	if rollups := AggregateByCustomer(nil, RevenueDirect, nil, time.Time{}, time.Time{}); len(rollups) != 0 {
		t.Fatalf("expected empty result, got %d rollups", len(rollups))
	}
	if rollups := AggregateBySupplier(nil, nil, time.Time{}, time.Time{}); len(rollups) != 0 {
		t.Fatalf("expected empty supplier result, got %d rollups", len(rollups))
	}
}

func TestAggregateDateRangeFilterIsInclusive(t *testing.T) {
	bills := []BillInput{
		billOn("2025-03-01", 1, "A", 100),
		billOn("2025-03-15", 1, "A", 200),
		billOn("2025-04-01", 1, "A", 400),
	}
	from := StartOfDay(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	to := EndOfDay(time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC))
	rollups := AggregateByCustomer(bills, RevenueDirect, nil, from, to)
	if len(rollups) != 1 {
		t.Fatalf("expected 1 rollup, got %d", len(rollups))
	}
	if !rollups[0].Revenue.Equal(d(300)) {
		t.Fatalf("revenue = %s, want 300", rollups[0].Revenue)
	}
}

func TestAggregateBySupplierWithCostTypeFilter(t *testing.T) {
	bills := []BillInput{
		billOn("2025-02-01", 1, "A", 0,
			CostLine{SupplierID: 5, SupplierName: "Hải Vận", CostTypeID: 1, Amount: d(400), Category: CategoryInvoiced},
			CostLine{SupplierID: 5, SupplierName: "Hải Vận", CostTypeID: 2, Amount: d(100), Category: CategoryPaidOnBehalf},
			CostLine{SupplierID: 6, SupplierName: "Kho Bãi", CostTypeID: 1, Amount: d(600), Category: CategoryInvoiced},
		),
	}

	all := AggregateBySupplier(bills, nil, time.Time{}, time.Time{})
	if len(all) != 2 {
		t.Fatalf("expected 2 suppliers, got %d", len(all))
	}
	if all[0].SupplierName != "Kho Bãi" {
		t.Fatalf("expected highest-cost supplier first, got %s", all[0].SupplierName)
	}
	if !all[1].Total.Equal(d(500)) {
		t.Fatalf("supplier total = %s, want 500", all[1].Total)
	}

	costType := int64(1)
	filtered := AggregateBySupplier(bills, &costType, time.Time{}, time.Time{})
	if len(filtered) != 2 {
		t.Fatalf("expected 2 suppliers after filter, got %d", len(filtered))
	}
	for _, r := range filtered {
		if !r.Costs.PaidOnBehalf.IsZero() {
			t.Fatalf("cost-type filter leaked paid-on-behalf costs: %+v", r)
		}
	}
}

func TestAggregateByPeriodSortsChronologically(t *testing.T) {
	bills := []BillInput{
		billOn("2025-01-10", 1, "A", 100),
		billOn("2024-12-05", 1, "A", 200),
		billOn("2025-02-20", 1, "A", 300),
	}
	rollups := AggregateByPeriod(bills, time.Time{}, time.Time{})
	want := []string{"December 2024", "January 2025", "February 2025"}
	if len(rollups) != len(want) {
		t.Fatalf("expected %d periods, got %d", len(want), len(rollups))
	}
	for i, label := range want {
		if rollups[i].Label != label {
			t.Fatalf("period %d = %s, want %s", i, rollups[i].Label, label)
		}
	}
}

func TestTopN(t *testing.T) {
	rollups := make([]Rollup, 7)
	top := TopN(rollups, 5)
	if len(top) != 5 {
		t.Fatalf("expected 5 rollups, got %d", len(top))
	}
	if got := TopN(rollups[:3], 5); len(got) != 3 {
		t.Fatalf("expected short list untouched, got %d", len(got))
	}
}

func TestChangePct(t *testing.T) {
	if got := ChangePct(d(150), d(100)); got != 50 {
		t.Fatalf("change = %f, want 50", got)
	}
	if got := ChangePct(d(150), decimal.Zero); got != 100 {
		t.Fatalf("change with zero previous = %f, want 100", got)
	}
	if got := ChangePct(d(50), d(100)); got != -50 {
		t.Fatalf("change = %f, want -50", got)
	}
}
