package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/freightwise/freightwise/internal/finance"
	"github.com/freightwise/freightwise/internal/platform/httpx"
	"github.com/freightwise/freightwise/internal/pricing"
)

// PriceSource supplies the cost-price snapshot used to infer bill revenue.
type PriceSource interface {
	LoadBook(ctx context.Context) (pricing.Book, error)
}

// Service computes bill views with totals. Revenue on these views comes
// from the price list, so a freshly created bill shows expected revenue
// before any revenue rows are recorded.
type Service struct {
	repo    Repository
	prices  PriceSource
	onWrite func(context.Context)
}

func NewService(repo Repository, prices PriceSource) *Service {
	return &Service{repo: repo, prices: prices}
}

// OnWrite registers a hook invoked after every successful bill write.
// The report cache hangs off this to invalidate itself.
func (s *Service) OnWrite(fn func(context.Context)) {
	s.onWrite = fn
}

func (s *Service) notifyWrite(ctx context.Context) {
	if s.onWrite != nil {
		s.onWrite(ctx)
	}
}

// Get returns one bill with its computed totals.
func (s *Service) Get(ctx context.Context, id int64) (*BillWithTotals, error) {
	bill, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	book, err := s.prices.LoadBook(ctx)
	if err != nil {
		return nil, err
	}
	view := BillWithTotals{Bill: *bill, Totals: computeTotals(*bill, book)}
	return &view, nil
}

// List returns filtered bills, each with computed totals.
func (s *Service) List(ctx context.Context, req ListBillsRequest) ([]BillWithTotals, error) {
	bills, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}
	book, err := s.prices.LoadBook(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]BillWithTotals, 0, len(bills))
	for _, b := range bills {
		views = append(views, BillWithTotals{Bill: b, Totals: computeTotals(b, book)})
	}
	return views, nil
}

// Create validates and stores a bill with its lines.
func (s *Service) Create(ctx context.Context, req CreateBillRequest) (*BillWithTotals, error) {
	if err := validateBillHeader(req.Number, req.CustomerID, req.ServiceID, req.Status); err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.notifyWrite(ctx)
	return s.Get(ctx, id)
}

// Update validates and stores bill header changes.
func (s *Service) Update(ctx context.Context, id int64, req UpdateBillRequest) error {
	if err := validateBillHeader(req.Number, req.CustomerID, req.ServiceID, req.Status); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, req); err != nil {
		return err
	}
	s.notifyWrite(ctx)
	return nil
}

// Delete removes a bill and its lines.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifyWrite(ctx)
	return nil
}

func validateBillHeader(number string, customerID, serviceID int64, status Status) error {
	if strings.TrimSpace(number) == "" {
		return fmt.Errorf("%w: bill number is required", httpx.ErrValidation)
	}
	if customerID <= 0 {
		return fmt.Errorf("%w: customer is required", httpx.ErrValidation)
	}
	if serviceID <= 0 {
		return fmt.Errorf("%w: service is required", httpx.ErrValidation)
	}
	if status != "" && !status.Valid() {
		return fmt.Errorf("%w: unknown bill status", httpx.ErrValidation)
	}
	return nil
}

func computeTotals(bill Bill, book pricing.Book) Totals {
	input := bill.Input()
	breakdown := finance.BreakdownCosts(input.Costs)
	revenue := finance.ResolveRevenue(input, finance.RevenuePriced, book)
	result := finance.ComputeProfit(revenue, breakdown)
	return Totals{
		TotalCost:         breakdown.Total(),
		TotalInvoicedCost: breakdown.Invoiced,
		TotalRevenue:      revenue,
		Profit:            result.Profit,
		Margin:            result.Margin,
	}
}
