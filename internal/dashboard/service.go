package dashboard

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/freightwise/freightwise/internal/finance"
	"github.com/freightwise/freightwise/internal/observability"
	"github.com/freightwise/freightwise/internal/resilient"
)

const topLimit = 5

// Service assembles the dashboard overview. Every window fetch races the
// query timeout; a slow or failing database degrades the payload to the
// static dataset instead of erroring the endpoint.
type Service struct {
	logger  *slog.Logger
	source  BillSource
	metrics *observability.Metrics
	timeout time.Duration
}

func NewService(logger *slog.Logger, source BillSource, metrics *observability.Metrics, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = resilient.DefaultTimeout
	}
	return &Service{logger: logger, source: source, metrics: metrics, timeout: timeout}
}

// Overview computes the dashboard for the window the timeframe names,
// ending now. The previous window of equal length feeds the trend figures.
func (s *Service) Overview(ctx context.Context, tf finance.Timeframe, now time.Time) (*Overview, error) {
	from, to, err := finance.ResolveRange(tf, now, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	prevTo := from.Add(-time.Nanosecond)
	prevFrom := from.Add(-to.Sub(from))

	var current, previous resilient.Outcome[[]finance.BillInput]
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		current = s.fetch(gctx, "dashboard_current", from, to, fallbackBills)
		return nil
	})
	g.Go(func() error {
		previous = s.fetch(gctx, "dashboard_previous", prevFrom, prevTo, nil)
		return nil
	})
	// fetches never error; Wait only orders the writes above.
	_ = g.Wait()

	summary := summarize(current.Value)
	prev := summarize(previous.Value)
	summary.RevenueTrendPct = finance.ChangePct(summary.TotalRevenue, prev.TotalRevenue)
	summary.ProfitTrendPct = finance.ChangePct(summary.Profit, prev.Profit)

	overview := Overview{
		Timeframe:    tf,
		From:         from,
		To:           to,
		Summary:      summary,
		TopCustomers: finance.TopN(finance.AggregateByCustomer(current.Value, finance.RevenueDirect, nil, time.Time{}, time.Time{}), topLimit),
		TopServices:  finance.TopN(finance.AggregateByService(current.Value, finance.RevenueDirect, nil, time.Time{}, time.Time{}), topLimit),
		Source:       current.Source,
	}
	return &overview, nil
}

func (s *Service) fetch(ctx context.Context, name string, from, to time.Time, fallback []finance.BillInput) resilient.Outcome[[]finance.BillInput] {
	outcome := resilient.Execute(ctx, s.timeout, func(c context.Context) ([]finance.BillInput, error) {
		return s.source.BillsInWindow(c, from, to)
	}, fallback)
	if outcome.Fallback() {
		s.metrics.CountFallback(name)
		resilient.Log(s.logger, name, outcome)
	}
	return outcome
}

func summarize(bills []finance.BillInput) Summary {
	var summary Summary
	for _, b := range bills {
		summary.BillCount++
		summary.TotalRevenue = summary.TotalRevenue.Add(b.DirectRevenue)
	}
	var breakdown finance.CostBreakdown
	for _, b := range bills {
		for _, c := range b.Costs {
			breakdown.Add(c.Category, c.Amount)
		}
	}
	result := finance.ComputeProfit(summary.TotalRevenue, breakdown)
	summary.TotalCost = breakdown.Total()
	summary.InvoicedCost = breakdown.Invoiced
	summary.PaidOnBehalfCost = breakdown.PaidOnBehalf
	summary.NoInvoiceCost = breakdown.NoInvoice
	summary.Profit = result.Profit
	summary.Margin = result.Margin
	return summary
}
