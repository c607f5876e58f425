package billing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightwise/freightwise/internal/pricing"
)

func newTestHandler(repo Repository) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(logger, NewService(repo, stubPrices{book: pricing.Book{}}))
}

func TestParseListRequestCoversWholeDays(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/bills?from=2025-03-01&to=2025-03-12", nil)

	req, err := parseListRequest(r)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), req.From)

	// bills carry a time of day, so the upper bound must reach the end of
	// the requested day rather than stopping at midnight
	afternoon := time.Date(2025, time.March, 12, 14, 0, 0, 0, time.UTC)
	assert.False(t, afternoon.After(req.To), "bound %s must cover %s", req.To, afternoon)
	assert.Equal(t, 12, req.To.Day())
	assert.True(t, req.To.Before(time.Date(2025, time.March, 13, 0, 0, 0, 0, time.UTC)))
}

func TestParseListRequestRejectsBadDate(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/bills?to=12-03-2025", nil)

	_, err := parseListRequest(r)
	require.Error(t, err)
}

type brokenRepo struct {
	*mockRepo
}

func (brokenRepo) Create(context.Context, CreateBillRequest) (int64, error) {
	return 0, errors.New("connection refused")
}

func TestCreateHandlerDistinguishesStorageFailures(t *testing.T) {
	h := newTestHandler(brokenRepo{newMockRepo()})
	body := `{"number":"FW-2503-009","customer_id":3,"service_id":2,"status":"COMPLETED"}`

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/bills", strings.NewReader(body))
	h.Create(rec, r)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// storage details never leak to the client
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestCreateHandlerRejectsInvalidBill(t *testing.T) {
	h := newTestHandler(newMockRepo())
	// passes struct validation but not the domain check on blank numbers
	body := `{"number":"   ","customer_id":3,"service_id":2,"status":"COMPLETED"}`

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/bills", strings.NewReader(body))
	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "bill number is required")
}
