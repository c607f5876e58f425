package dashboard

import (
	"context"
	"time"

	"github.com/freightwise/freightwise/internal/billing"
	"github.com/freightwise/freightwise/internal/finance"
)

// BillSource fetches the bills whose date falls inside the window, in the
// engine's record shape.
type BillSource interface {
	BillsInWindow(ctx context.Context, from, to time.Time) ([]finance.BillInput, error)
}

// BillingSource adapts the billing repository to the dashboard's read shape.
type BillingSource struct {
	repo billing.Repository
}

func NewBillingSource(repo billing.Repository) *BillingSource {
	return &BillingSource{repo: repo}
}

func (s *BillingSource) BillsInWindow(ctx context.Context, from, to time.Time) ([]finance.BillInput, error) {
	bills, err := s.repo.List(ctx, billing.ListBillsRequest{From: from, To: to})
	if err != nil {
		return nil, err
	}
	inputs := make([]finance.BillInput, 0, len(bills))
	for _, b := range bills {
		inputs = append(inputs, b.Input())
	}
	return inputs, nil
}
