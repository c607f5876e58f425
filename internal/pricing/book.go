package pricing

import "github.com/shopspring/decimal"

// Book is an in-memory snapshot of the cost-price list, keyed by
// (customer, service, cost type). It satisfies finance.PriceBook.
type Book map[[3]int64]decimal.Decimal

// CostPrice resolves a quote; ok is false when none is recorded.
func (b Book) CostPrice(customerID, serviceID, costTypeID int64) (decimal.Decimal, bool) {
	price, ok := b[[3]int64{customerID, serviceID, costTypeID}]
	return price, ok
}

// Put inserts or replaces a quote.
func (b Book) Put(customerID, serviceID, costTypeID int64, amount decimal.Decimal) {
	b[[3]int64{customerID, serviceID, costTypeID}] = amount
}
