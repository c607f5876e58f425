package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightwise/freightwise/internal/finance"
	"github.com/freightwise/freightwise/internal/platform/httpx"
	"github.com/freightwise/freightwise/internal/pricing"
)

type mockRepo struct {
	bills   map[int64]*Bill
	nextID  int64
	created *CreateBillRequest
	updated *UpdateBillRequest
	deleted []int64
}

func newMockRepo(bills ...*Bill) *mockRepo {
	m := &mockRepo{bills: make(map[int64]*Bill), nextID: 100}
	for _, b := range bills {
		m.bills[b.ID] = b
	}
	return m
}

func (m *mockRepo) Get(_ context.Context, id int64) (*Bill, error) {
	b, ok := m.bills[id]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

func (m *mockRepo) List(_ context.Context, req ListBillsRequest) ([]Bill, error) {
	var out []Bill
	for _, b := range m.bills {
		if req.CustomerID != nil && b.CustomerID != *req.CustomerID {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (m *mockRepo) Create(_ context.Context, req CreateBillRequest) (int64, error) {
	m.created = &req
	m.nextID++
	m.bills[m.nextID] = &Bill{
		ID:         m.nextID,
		Number:     req.Number,
		CustomerID: req.CustomerID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Status:     req.Status,
	}
	return m.nextID, nil
}

func (m *mockRepo) Update(_ context.Context, id int64, req UpdateBillRequest) error {
	if _, ok := m.bills[id]; !ok {
		return ErrNotFound
	}
	m.updated = &req
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.bills[id]; !ok {
		return ErrNotFound
	}
	m.deleted = append(m.deleted, id)
	delete(m.bills, id)
	return nil
}

type stubPrices struct {
	book pricing.Book
}

func (s stubPrices) LoadBook(context.Context) (pricing.Book, error) {
	return s.book, nil
}

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func sampleBill() *Bill {
	date := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)
	return &Bill{
		ID:         1,
		Number:     "FW-2503-001",
		CustomerID: 1,
		ServiceID:  2,
		Date:       date,
		Status:     StatusCompleted,
		Costs: []Cost{
			{
				ID:         11,
				BillID:     1,
				CostTypeID: 10,
				SupplierID: 7,
				Amount:     money(5_000_000),
				Date:       date,
			},
			{
				ID:         12,
				BillID:     1,
				CostTypeID: 11,
				SupplierID: 8,
				Amount:     money(3_000_000),
				Date:       date,
				Attributes: []finance.AttributeValue{
					{AttributeName: finance.AttrPaidOnBehalf, Value: "true"},
				},
			},
		},
	}
}

func samplePrices() stubPrices {
	book := pricing.Book{}
	book.Put(1, 2, 10, money(7_000_000))
	book.Put(1, 2, 11, money(1_500_000))
	return stubPrices{book: book}
}

func TestServiceGetComputesTotals(t *testing.T) {
	svc := NewService(newMockRepo(sampleBill()), samplePrices())

	got, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, got.Totals.TotalRevenue.Equal(money(8_500_000)), "revenue %s", got.Totals.TotalRevenue)
	assert.True(t, got.Totals.TotalCost.Equal(money(8_000_000)), "total cost %s", got.Totals.TotalCost)
	assert.True(t, got.Totals.TotalInvoicedCost.Equal(money(5_000_000)), "invoiced cost %s", got.Totals.TotalInvoicedCost)
	assert.True(t, got.Totals.Profit.Equal(money(3_500_000)), "profit %s", got.Totals.Profit)
	assert.InDelta(t, 41.18, got.Totals.Margin, 0.01)
}

func TestServiceGetNotFound(t *testing.T) {
	svc := NewService(newMockRepo(), samplePrices())

	_, err := svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceListAttachesTotalsPerBill(t *testing.T) {
	other := sampleBill()
	other.ID = 2
	other.Number = "FW-2503-002"
	other.Costs = other.Costs[:1]
	for i := range other.Costs {
		other.Costs[i].BillID = 2
	}

	svc := NewService(newMockRepo(sampleBill(), other), samplePrices())

	got, err := svc.List(context.Background(), ListBillsRequest{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	byNumber := map[string]BillWithTotals{}
	for _, b := range got {
		byNumber[b.Number] = b
	}
	assert.True(t, byNumber["FW-2503-001"].Totals.Profit.Equal(money(3_500_000)))
	assert.True(t, byNumber["FW-2503-002"].Totals.Profit.Equal(money(2_000_000)))
}

func TestServiceCreateRejectsBlankNumber(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, samplePrices())

	_, err := svc.Create(context.Background(), CreateBillRequest{
		Number:     "   ",
		CustomerID: 1,
		ServiceID:  2,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
	assert.Nil(t, repo.created)
}

func TestServiceCreateReturnsStoredBill(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, samplePrices())

	got, err := svc.Create(context.Background(), CreateBillRequest{
		Number:     "FW-2504-010",
		CustomerID: 1,
		ServiceID:  2,
		Status:     StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, "FW-2504-010", got.Number)
	assert.True(t, got.Totals.TotalRevenue.IsZero())
	assert.Zero(t, got.Totals.Margin)
}

func TestServiceUpdateRejectsUnknownStatus(t *testing.T) {
	repo := newMockRepo(sampleBill())
	svc := NewService(repo, samplePrices())

	err := svc.Update(context.Background(), 1, UpdateBillRequest{
		Number:     "FW-2503-001",
		CustomerID: 1,
		ServiceID:  2,
		Status:     Status("ARCHIVED"),
	})
	require.Error(t, err)
	assert.Nil(t, repo.updated)
}

func TestServiceNotifiesOnWrite(t *testing.T) {
	repo := newMockRepo(sampleBill())
	svc := NewService(repo, samplePrices())
	writes := 0
	svc.OnWrite(func(context.Context) { writes++ })

	_, err := svc.Create(context.Background(), CreateBillRequest{Number: "FW-2504-011", CustomerID: 1, ServiceID: 2})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, 2, writes)
}

func TestServiceDelete(t *testing.T) {
	repo := newMockRepo(sampleBill())
	svc := NewService(repo, samplePrices())

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, []int64{1}, repo.deleted)
	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrNotFound)
}
