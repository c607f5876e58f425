package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Rollup is one bucket of a bill-grouped aggregation: per customer, per
// service or per calendar month.
type Rollup struct {
	Key        int64           `json:"key"`
	Name       string          `json:"name"`
	BillCount  int             `json:"bill_count"`
	Revenue    decimal.Decimal `json:"revenue"`
	Costs      CostBreakdown   `json:"costs"`
	Profit     decimal.Decimal `json:"profit"`
	Margin     float64         `json:"margin"`
	Percentage float64         `json:"percentage"`
}

// SupplierRollup is one bucket of a cost-grouped aggregation.
type SupplierRollup struct {
	SupplierID   int64           `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	CostCount    int             `json:"cost_count"`
	Costs        CostBreakdown   `json:"costs"`
	Total        decimal.Decimal `json:"total"`
	Percentage   float64         `json:"percentage"`
}

// PeriodRollup is a monthly profit-and-loss bucket labelled "January 2006".
type PeriodRollup struct {
	Label     string          `json:"label"`
	BillCount int             `json:"bill_count"`
	Revenue   decimal.Decimal `json:"revenue"`
	Costs     CostBreakdown   `json:"costs"`
	Profit    decimal.Decimal `json:"profit"`
	Margin    float64         `json:"margin"`
}

// periodLabelLayout renders and re-parses the month bucket label. Sorting
// has to go through the parsed date: a string sort on the label misorders
// buckets across years.
const periodLabelLayout = "January 2006"

type billKeyFunc func(BillInput) (int64, string)

// AggregateByCustomer rolls bills up per customer, sorted by profit
// descending. Percentage is each customer's share of total profit.
func AggregateByCustomer(bills []BillInput, strategy RevenueStrategy, prices PriceBook, from, to time.Time) []Rollup {
	return aggregateBills(bills, strategy, prices, from, to, func(b BillInput) (int64, string) {
		return b.CustomerID, b.CustomerName
	})
}

// AggregateByService rolls bills up per service, sorted by profit descending.
func AggregateByService(bills []BillInput, strategy RevenueStrategy, prices PriceBook, from, to time.Time) []Rollup {
	return aggregateBills(bills, strategy, prices, from, to, func(b BillInput) (int64, string) {
		return b.ServiceID, b.ServiceName
	})
}

func aggregateBills(bills []BillInput, strategy RevenueStrategy, prices PriceBook, from, to time.Time, key billKeyFunc) []Rollup {
	bills = FilterBills(bills, from, to)

	index := make(map[int64]int)
	rollups := make([]Rollup, 0)
	for _, b := range bills {
		id, name := key(b)
		pos, ok := index[id]
		if !ok {
			pos = len(rollups)
			index[id] = pos
			rollups = append(rollups, Rollup{Key: id, Name: name})
		}
		r := &rollups[pos]
		r.BillCount++
		r.Revenue = r.Revenue.Add(ResolveRevenue(b, strategy, prices))
		for _, c := range b.Costs {
			r.Costs.Add(c.Category, c.Amount)
		}
	}

	totalProfit := decimal.Zero
	for i := range rollups {
		result := ComputeProfit(rollups[i].Revenue, rollups[i].Costs)
		rollups[i].Profit = result.Profit
		rollups[i].Margin = result.Margin
		totalProfit = totalProfit.Add(result.Profit)
	}
	for i := range rollups {
		rollups[i].Percentage = share(rollups[i].Profit, totalProfit)
	}

	sort.SliceStable(rollups, func(i, j int) bool {
		return rollups[i].Profit.GreaterThan(rollups[j].Profit)
	})
	return rollups
}

// AggregateBySupplier rolls cost lines up per supplier, sorted by total cost
// descending. A cost-type filter narrows the lines before bucketing.
// Percentage is each supplier's share of total costs.
func AggregateBySupplier(bills []BillInput, costTypeID *int64, from, to time.Time) []SupplierRollup {
	bills = FilterBills(bills, from, to)

	index := make(map[int64]int)
	rollups := make([]SupplierRollup, 0)
	for _, b := range bills {
		for _, c := range b.Costs {
			if costTypeID != nil && c.CostTypeID != *costTypeID {
				continue
			}
			pos, ok := index[c.SupplierID]
			if !ok {
				pos = len(rollups)
				index[c.SupplierID] = pos
				rollups = append(rollups, SupplierRollup{SupplierID: c.SupplierID, SupplierName: c.SupplierName})
			}
			r := &rollups[pos]
			r.CostCount++
			r.Costs.Add(c.Category, c.Amount)
		}
	}

	grandTotal := decimal.Zero
	for i := range rollups {
		rollups[i].Total = rollups[i].Costs.Total()
		grandTotal = grandTotal.Add(rollups[i].Total)
	}
	for i := range rollups {
		rollups[i].Percentage = share(rollups[i].Total, grandTotal)
	}

	sort.SliceStable(rollups, func(i, j int) bool {
		return rollups[i].Total.GreaterThan(rollups[j].Total)
	})
	return rollups
}

// AggregateByPeriod rolls bills up per calendar month in chronological
// order, using direct revenue.
func AggregateByPeriod(bills []BillInput, from, to time.Time) []PeriodRollup {
	bills = FilterBills(bills, from, to)

	index := make(map[string]int)
	rollups := make([]PeriodRollup, 0)
	for _, b := range bills {
		label := b.Date.Format(periodLabelLayout)
		pos, ok := index[label]
		if !ok {
			pos = len(rollups)
			index[label] = pos
			rollups = append(rollups, PeriodRollup{Label: label})
		}
		r := &rollups[pos]
		r.BillCount++
		r.Revenue = r.Revenue.Add(b.DirectRevenue)
		for _, c := range b.Costs {
			r.Costs.Add(c.Category, c.Amount)
		}
	}

	for i := range rollups {
		result := ComputeProfit(rollups[i].Revenue, rollups[i].Costs)
		rollups[i].Profit = result.Profit
		rollups[i].Margin = result.Margin
	}

	SortPeriodLabels(rollups)
	return rollups
}

// SortPeriodLabels orders monthly rollups by actual calendar position.
func SortPeriodLabels(rollups []PeriodRollup) {
	sort.SliceStable(rollups, func(i, j int) bool {
		ti, erri := time.Parse(periodLabelLayout, rollups[i].Label)
		tj, errj := time.Parse(periodLabelLayout, rollups[j].Label)
		if erri != nil || errj != nil {
			return rollups[i].Label < rollups[j].Label
		}
		return ti.Before(tj)
	})
}

// TopN truncates a sorted rollup list for the dashboard panels.
func TopN(rollups []Rollup, n int) []Rollup {
	if n <= 0 || len(rollups) <= n {
		return rollups
	}
	return rollups[:n]
}

// ChangePct is the period-over-period trend: (current-previous)/previous*100.
// A zero previous period reports 100, matching the dashboard convention.
func ChangePct(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 100
	}
	return round2(current.Sub(previous).Div(previous).InexactFloat64() * 100)
}

func share(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return round2(part.Div(total).InexactFloat64() * 100)
}
