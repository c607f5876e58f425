package reporthttp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightwise/freightwise/internal/finance"
	"github.com/freightwise/freightwise/internal/pricing"
	"github.com/freightwise/freightwise/internal/reports"
)

type stubSource struct{}

func (stubSource) BillsInWindow(_ context.Context, _, _ time.Time) ([]finance.BillInput, error) {
	date := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)
	return []finance.BillInput{
		{
			ID: 1, Number: "FW-2502-001",
			CustomerID: 1, CustomerName: "Saigon Textiles Co",
			ServiceID: 1, ServiceName: "Sea Freight FCL",
			Date:          date,
			DirectRevenue: decimal.NewFromInt(10_000_000),
			Costs: []finance.CostLine{
				{ID: 1, BillID: 1, CostTypeID: 1, CostTypeName: "Ocean freight", SupplierID: 1, SupplierName: "Hai Phong Lines", Amount: decimal.NewFromInt(6_000_000), Date: date, Category: finance.CategoryInvoiced},
			},
		},
	}, nil
}

type stubPrices struct{}

func (stubPrices) LoadBook(context.Context) (pricing.Book, error) {
	book := pricing.Book{}
	book.Put(1, 1, 1, decimal.NewFromInt(9_000_000))
	return book, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := reports.NewService(logger, stubSource{}, stubPrices{}, reports.NewCache(nil, 0))
	handler := NewHandler(logger, svc, nil)
	r := chi.NewRouter()
	r.Route("/reports", handler.MountRoutes)
	return r
}

func TestCustomersEndpointReturnsRollups(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/customers?timeframe=month", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Rows []struct {
			Name    string `json:"name"`
			Revenue string `json:"revenue"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Rows, 1)
	assert.Equal(t, "Saigon Textiles Co", payload.Rows[0].Name)
	assert.Equal(t, "9000000", payload.Rows[0].Revenue)
}

func TestCustomersEndpointRejectsBadTimeframe(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/customers?timeframe=decade", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestCSVEndpointSetsDownloadHeaders(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/profit-loss/export.csv?timeframe=quarter", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "profit-loss.csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Month,"))
}

func TestCSVEndpointRateLimited(t *testing.T) {
	router := newTestRouter(t)

	var last int
	for i := 0; i < 12; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/reports/customers/export.csv?timeframe=week", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		router.ServeHTTP(rec, req)
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

type recordingSheets struct {
	titles []string
}

func (r *recordingSheets) ExportSheet(_ context.Context, title string, csvPayload []byte) (string, error) {
	if len(csvPayload) == 0 {
		return "", errors.New("empty payload")
	}
	r.titles = append(r.titles, title)
	return "https://sheets.example.com/" + title, nil
}

func TestSheetExportDisabledByDefault(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reports/customers/export.sheet?timeframe=month", nil))

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestSheetExportPushesRenderedCSV(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := reports.NewService(logger, stubSource{}, stubPrices{}, reports.NewCache(nil, 0))
	sheets := &recordingSheets{}
	handler := NewHandler(logger, svc, sheets)
	r := chi.NewRouter()
	r.Route("/reports", handler.MountRoutes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reports/customers/export.sheet?timeframe=month", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, []string{"customers"}, sheets.titles)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "https://sheets.example.com/customers", payload["url"])
}
