package finance

import "github.com/shopspring/decimal"

// RevenueStrategy selects how a bill's revenue is resolved. Exactly one
// strategy applies per report type; strategies are never mixed inside a
// single rollup.
type RevenueStrategy int

const (
	// RevenueDirect sums the recorded revenue rows of the bill. Used for
	// dashboard-wide and period rollups.
	RevenueDirect RevenueStrategy = iota
	// RevenuePriced infers revenue from the price book, one quote per cost
	// line keyed by (customer, service, cost type). Used for bill views that
	// must work before any revenue rows exist.
	RevenuePriced
)

// ResolveRevenue returns the revenue attributed to the bill under the given
// strategy. Under RevenuePriced a cost without a matching quote contributes
// zero; this is not an error.
func ResolveRevenue(bill BillInput, strategy RevenueStrategy, prices PriceBook) decimal.Decimal {
	switch strategy {
	case RevenuePriced:
		total := decimal.Zero
		if prices == nil {
			return total
		}
		for _, c := range bill.Costs {
			if price, ok := prices.CostPrice(bill.CustomerID, bill.ServiceID, c.CostTypeID); ok {
				total = total.Add(price)
			}
		}
		return total
	default:
		return bill.DirectRevenue
	}
}

// SplitEvenly divides a bill's revenue across its cost lines for detail
// reports. A bill with no cost lines keeps the full amount on a single
// synthetic summary row, which the caller produces.
func SplitEvenly(revenue decimal.Decimal, costCount int) decimal.Decimal {
	if costCount <= 0 {
		return revenue
	}
	return revenue.Div(decimal.NewFromInt(int64(costCount)))
}
