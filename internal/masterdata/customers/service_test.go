package customers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightwise/freightwise/internal/masterdata/shared"
)

type mockRepo struct {
	customers map[int64]Customer
	nextID    int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{customers: make(map[int64]Customer)}
}

func (m *mockRepo) List(_ context.Context, _ shared.ListFilters) ([]Customer, int, error) {
	out := make([]Customer, 0, len(m.customers))
	for _, c := range m.customers {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (m *mockRepo) Get(_ context.Context, id int64) (Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return Customer{}, ErrNotFound
	}
	return c, nil
}

func (m *mockRepo) Create(_ context.Context, customer Customer) (Customer, error) {
	m.nextID++
	customer.ID = m.nextID
	m.customers[customer.ID] = customer
	return customer, nil
}

func (m *mockRepo) Update(_ context.Context, id int64, customer Customer) error {
	if _, ok := m.customers[id]; !ok {
		return ErrNotFound
	}
	customer.ID = id
	m.customers[id] = customer
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.customers[id]; !ok {
		return ErrNotFound
	}
	delete(m.customers, id)
	return nil
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Create(context.Background(), Customer{Name: "  "})
	require.Error(t, err)

	created, err := svc.Create(context.Background(), Customer{Name: "Saigon Textiles Co", TaxCode: "0312345678"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestUpdateValidatesBeforeStore(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), Customer{Name: "Delta Agro Export"})
	require.NoError(t, err)

	require.Error(t, svc.Update(context.Background(), created.ID, Customer{Name: ""}))
	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Delta Agro Export", got.Name)
}

func TestGetUnknownCustomer(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
