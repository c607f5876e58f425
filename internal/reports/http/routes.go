package reporthttp

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

var (
	errInvalidCostType = errors.New("invalid cost_type_id")
	errInvalidCustomer = errors.New("invalid customer id")
)

// MountRoutes registers report endpoints. CSV downloads are rate limited
// per client IP; they bypass the cache less often and cost a full scan.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(10, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	r.Get("/customers", h.handleCustomers)
	r.Get("/suppliers", h.handleSuppliers)
	r.Get("/profit-loss", h.handleProfitLoss)
	r.Get("/bills/{customerID}", h.handleBillDetail)
	r.Group(func(gr chi.Router) {
		gr.Use(limiter)
		gr.Get("/customers/export.csv", h.handleCustomersCSV)
		gr.Post("/customers/export.sheet", h.handleCustomersSheet)
		gr.Get("/suppliers/export.csv", h.handleSuppliersCSV)
		gr.Get("/profit-loss/export.csv", h.handleProfitLossCSV)
		gr.Get("/bills/{customerID}/export.csv", h.handleBillDetailCSV)
	})
}
