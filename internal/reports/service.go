package reports

import (
	"context"
	"log/slog"
	"time"

	"github.com/freightwise/freightwise/internal/finance"
	"github.com/freightwise/freightwise/internal/pricing"
)

// BillSource fetches the bills of the window in the engine's record shape.
type BillSource interface {
	BillsInWindow(ctx context.Context, from, to time.Time) ([]finance.BillInput, error)
}

// PriceSource supplies the cost-price snapshot for priced-revenue reports.
type PriceSource interface {
	LoadBook(ctx context.Context) (pricing.Book, error)
}

// Service builds the read-side reports. Every report is cached under the
// global cache version; bill writes bump the version through InvalidateAll.
type Service struct {
	logger *slog.Logger
	bills  BillSource
	prices PriceSource
	cache  *Cache
}

func NewService(logger *slog.Logger, bills BillSource, prices PriceSource, cache *Cache) *Service {
	return &Service{logger: logger, bills: bills, prices: prices, cache: cache}
}

// InvalidateAll drops every cached report. Called after bill writes.
func (s *Service) InvalidateAll(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("report cache bump failed", slog.Any("error", err))
	}
}

// Customers reports per-customer profitability for the window, revenue
// resolved from the price book.
func (s *Service) Customers(ctx context.Context, window Window) (*CustomerReport, error) {
	key, err := s.cache.BuildKey(ctx, keyCustomerReport(window.From, window.To)...)
	if err != nil {
		return nil, err
	}
	var report CustomerReport
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (any, error) {
		bills, book, err := s.load(ctx, window)
		if err != nil {
			return nil, err
		}
		rows := finance.AggregateByCustomer(bills, finance.RevenuePriced, book, time.Time{}, time.Time{})
		return &CustomerReport{
			Timeframe: window.Timeframe,
			From:      window.From,
			To:        window.To,
			Rows:      rows,
			Totals:    totalRollups(rows),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Suppliers reports per-supplier cost totals for the window, optionally
// narrowed to one cost type.
func (s *Service) Suppliers(ctx context.Context, window Window, costTypeID *int64) (*SupplierReport, error) {
	key, err := s.cache.BuildKey(ctx, keySupplierReport(costTypeID, window.From, window.To)...)
	if err != nil {
		return nil, err
	}
	var report SupplierReport
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (any, error) {
		bills, err := s.bills.BillsInWindow(ctx, window.From, window.To)
		if err != nil {
			return nil, err
		}
		rows := finance.AggregateBySupplier(bills, costTypeID, time.Time{}, time.Time{})
		out := SupplierReport{
			Timeframe:  window.Timeframe,
			From:       window.From,
			To:         window.To,
			CostTypeID: costTypeID,
			Rows:       rows,
		}
		for _, r := range rows {
			out.TotalCost = out.TotalCost.Add(r.Total)
		}
		return &out, nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ProfitLoss reports month-by-month results for the window using recorded
// revenue rows.
func (s *Service) ProfitLoss(ctx context.Context, window Window) (*ProfitLossReport, error) {
	key, err := s.cache.BuildKey(ctx, keyProfitLoss(window.From, window.To)...)
	if err != nil {
		return nil, err
	}
	var report ProfitLossReport
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (any, error) {
		bills, err := s.bills.BillsInWindow(ctx, window.From, window.To)
		if err != nil {
			return nil, err
		}
		rows := finance.AggregateByPeriod(bills, time.Time{}, time.Time{})
		return &ProfitLossReport{
			From:   window.From,
			To:     window.To,
			Rows:   rows,
			Totals: totalPeriods(rows),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// BillDetail lists one customer's bills line by line. Each bill's priced
// revenue is split evenly across its cost lines; a bill without costs gets
// a single synthetic line carrying the full revenue.
func (s *Service) BillDetail(ctx context.Context, customerID int64, window Window) (*BillDetailReport, error) {
	key, err := s.cache.BuildKey(ctx, keyBillDetail(customerID, window.From, window.To)...)
	if err != nil {
		return nil, err
	}
	var report BillDetailReport
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (any, error) {
		bills, book, err := s.load(ctx, window)
		if err != nil {
			return nil, err
		}
		out := BillDetailReport{CustomerID: customerID, From: window.From, To: window.To}
		var grand BillDetailRow
		grand.Kind = RowTotal
		for _, bill := range bills {
			if bill.CustomerID != customerID {
				continue
			}
			out.CustomerName = bill.CustomerName
			revenue := finance.ResolveRevenue(bill, finance.RevenuePriced, book)
			breakdown := finance.BreakdownCosts(bill.Costs)

			if len(bill.Costs) == 0 {
				// no cost lines means no price-book quotes; fall back to
				// the recorded revenue rows so the bill still shows up
				revenue = bill.DirectRevenue
				out.Rows = append(out.Rows, BillDetailRow{
					Kind:       RowCost,
					BillNumber: bill.Number,
					Date:       bill.Date,
					Revenue:    revenue,
					Profit:     revenue,
				})
			}
			allocated := finance.SplitEvenly(revenue, len(bill.Costs))
			for _, c := range bill.Costs {
				out.Rows = append(out.Rows, BillDetailRow{
					Kind:         RowCost,
					BillNumber:   bill.Number,
					Date:         bill.Date,
					CostTypeName: c.CostTypeName,
					SupplierName: c.SupplierName,
					Category:     c.Category,
					Cost:         c.Amount,
					Revenue:      allocated,
					Profit:       finance.LineProfit(c.Category, allocated, c.Amount),
				})
			}

			result := finance.ComputeProfit(revenue, breakdown)
			out.Rows = append(out.Rows, BillDetailRow{
				Kind:       RowSummary,
				BillNumber: bill.Number,
				Date:       bill.Date,
				Cost:       breakdown.Total(),
				Revenue:    revenue,
				Profit:     result.Profit,
			})
			grand.Cost = grand.Cost.Add(breakdown.Total())
			grand.Revenue = grand.Revenue.Add(revenue)
			grand.Profit = grand.Profit.Add(result.Profit)
		}
		out.Rows = append(out.Rows, grand)
		return &out, nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Service) load(ctx context.Context, window Window) ([]finance.BillInput, pricing.Book, error) {
	bills, err := s.bills.BillsInWindow(ctx, window.From, window.To)
	if err != nil {
		return nil, nil, err
	}
	book, err := s.prices.LoadBook(ctx)
	if err != nil {
		return nil, nil, err
	}
	return bills, book, nil
}

func totalRollups(rows []finance.Rollup) ReportTotals {
	var t ReportTotals
	var costs finance.CostBreakdown
	for _, r := range rows {
		t.BillCount += r.BillCount
		t.Revenue = t.Revenue.Add(r.Revenue)
		costs.Invoiced = costs.Invoiced.Add(r.Costs.Invoiced)
		costs.PaidOnBehalf = costs.PaidOnBehalf.Add(r.Costs.PaidOnBehalf)
		costs.NoInvoice = costs.NoInvoice.Add(r.Costs.NoInvoice)
	}
	result := finance.ComputeProfit(t.Revenue, costs)
	t.TotalCost = costs.Total()
	t.InvoicedCost = costs.Invoiced
	t.Profit = result.Profit
	t.Margin = result.Margin
	return t
}

func totalPeriods(rows []finance.PeriodRollup) ReportTotals {
	var t ReportTotals
	var costs finance.CostBreakdown
	for _, r := range rows {
		t.BillCount += r.BillCount
		t.Revenue = t.Revenue.Add(r.Revenue)
		costs.Invoiced = costs.Invoiced.Add(r.Costs.Invoiced)
		costs.PaidOnBehalf = costs.PaidOnBehalf.Add(r.Costs.PaidOnBehalf)
		costs.NoInvoice = costs.NoInvoice.Add(r.Costs.NoInvoice)
	}
	result := finance.ComputeProfit(t.Revenue, costs)
	t.TotalCost = costs.Total()
	t.InvoicedCost = costs.Invoiced
	t.Profit = result.Profit
	t.Margin = result.Margin
	return t
}
