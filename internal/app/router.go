package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/freightwise/freightwise/internal/billing"
	"github.com/freightwise/freightwise/internal/dashboard"
	"github.com/freightwise/freightwise/internal/masterdata/costtypes"
	"github.com/freightwise/freightwise/internal/masterdata/customers"
	"github.com/freightwise/freightwise/internal/masterdata/services"
	"github.com/freightwise/freightwise/internal/masterdata/suppliers"
	"github.com/freightwise/freightwise/internal/observability"
	"github.com/freightwise/freightwise/internal/pricing"
	reporthttp "github.com/freightwise/freightwise/internal/reports/http"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger  *slog.Logger
	Config  *Config
	Metrics *observability.Metrics

	CustomerHandler  *customers.Handler
	SupplierHandler  *suppliers.Handler
	ServiceHandler   *services.Handler
	CostTypeHandler  *costtypes.Handler
	PricingHandler   *pricing.Handler
	BillingHandler   *billing.Handler
	DashboardHandler *dashboard.Handler
	ReportHandler    *reporthttp.Handler
}

// NewRouter constructs the chi.Router with FreightWise defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/customers", params.CustomerHandler.MountRoutes)
		api.Route("/suppliers", params.SupplierHandler.MountRoutes)
		api.Route("/services", params.ServiceHandler.MountRoutes)
		api.Route("/cost-types", params.CostTypeHandler.MountRoutes)
		api.Route("/pricing", params.PricingHandler.MountRoutes)
		api.Route("/bills", params.BillingHandler.MountRoutes)
		api.Route("/dashboard", params.DashboardHandler.MountRoutes)
		api.Route("/reports", params.ReportHandler.MountRoutes)
	})

	return r
}
