package pricing

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/freightwise/freightwise/internal/platform/httpx"
)

type Handler struct {
	logger   *slog.Logger
	repo     Repository
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, repo Repository) *Handler {
	return &Handler{logger: logger, repo: repo, validate: validator.New()}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/prices", h.ListPrices)
	r.Put("/prices", h.UpsertPrice)
	r.Delete("/prices/{id}", h.DeletePrice)

	r.Get("/cost-prices", h.ListCostPrices)
	r.Put("/cost-prices", h.UpsertCostPrice)
	r.Delete("/cost-prices/{id}", h.DeleteCostPrice)
}

type priceRequest struct {
	CustomerID int64           `json:"customer_id" validate:"required,gt=0"`
	ServiceID  int64           `json:"service_id" validate:"required,gt=0"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
}

type costPriceRequest struct {
	CustomerID int64           `json:"customer_id" validate:"required,gt=0"`
	ServiceID  int64           `json:"service_id" validate:"required,gt=0"`
	CostTypeID int64           `json:"cost_type_id" validate:"required,gt=0"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
}

func (h *Handler) ListPrices(w http.ResponseWriter, r *http.Request) {
	customerID := optionalID(r, "customer_id")
	prices, err := h.repo.ListPrices(r.Context(), customerID)
	if err != nil {
		h.logger.Error("list prices failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"prices": prices})
}

func (h *Handler) UpsertPrice(w http.ResponseWriter, r *http.Request) {
	var req priceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	price, err := h.repo.UpsertPrice(r.Context(), Price{
		CustomerID: req.CustomerID,
		ServiceID:  req.ServiceID,
		Amount:     req.Amount,
	})
	if err != nil {
		h.logger.Error("upsert price failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, price)
}

func (h *Handler) DeletePrice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid price id")
		return
	}
	if err := h.repo.DeletePrice(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
			return
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ListCostPrices(w http.ResponseWriter, r *http.Request) {
	customerID := optionalID(r, "customer_id")
	prices, err := h.repo.ListCostPrices(r.Context(), customerID)
	if err != nil {
		h.logger.Error("list cost prices failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"cost_prices": prices})
}

func (h *Handler) UpsertCostPrice(w http.ResponseWriter, r *http.Request) {
	var req costPriceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	price, err := h.repo.UpsertCostPrice(r.Context(), CostPrice{
		CustomerID: req.CustomerID,
		ServiceID:  req.ServiceID,
		CostTypeID: req.CostTypeID,
		Amount:     req.Amount,
	})
	if err != nil {
		h.logger.Error("upsert cost price failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, price)
}

func (h *Handler) DeleteCostPrice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid cost price id")
		return
	}
	if err := h.repo.DeleteCostPrice(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
			return
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func optionalID(r *http.Request, key string) *int64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}
