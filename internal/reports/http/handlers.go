// Package reporthttp exposes the report endpoints, including the
// rate-limited CSV downloads.
package reporthttp

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/freightwise/freightwise/internal/platform/httpx"
	"github.com/freightwise/freightwise/internal/reports"
	"github.com/freightwise/freightwise/internal/reports/export"
)

type Handler struct {
	logger  *slog.Logger
	service *reports.Service
	sheets  export.SheetExporter
}

func NewHandler(logger *slog.Logger, service *reports.Service, sheets export.SheetExporter) *Handler {
	if sheets == nil {
		sheets = export.DisabledSheets{}
	}
	return &Handler{logger: logger, service: service, sheets: sheets}
}

func (h *Handler) handleCustomers(w http.ResponseWriter, r *http.Request) {
	window, err := reports.ParseWindow(r.URL.Query(), time.Now())
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	report, err := h.service.Customers(r.Context(), window)
	if err != nil {
		h.logger.Error("customer report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) handleCustomersCSV(w http.ResponseWriter, r *http.Request) {
	window, err := reports.ParseWindow(r.URL.Query(), time.Now())
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	report, err := h.service.Customers(r.Context(), window)
	if err != nil {
		h.logger.Error("customer report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	writeCSVHeader(w, "customers")
	if err := export.WriteCustomerCSV(w, report); err != nil {
		h.logger.Error("customer csv write failed", slog.Any("error", err))
	}
}

func (h *Handler) handleSuppliers(w http.ResponseWriter, r *http.Request) {
	window, costTypeID, err := h.supplierParams(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	report, err := h.service.Suppliers(r.Context(), window, costTypeID)
	if err != nil {
		h.logger.Error("supplier report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) handleSuppliersCSV(w http.ResponseWriter, r *http.Request) {
	window, costTypeID, err := h.supplierParams(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	report, err := h.service.Suppliers(r.Context(), window, costTypeID)
	if err != nil {
		h.logger.Error("supplier report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	writeCSVHeader(w, "suppliers")
	if err := export.WriteSupplierCSV(w, report); err != nil {
		h.logger.Error("supplier csv write failed", slog.Any("error", err))
	}
}

func (h *Handler) handleProfitLoss(w http.ResponseWriter, r *http.Request) {
	window, err := reports.ParseWindow(r.URL.Query(), time.Now())
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	report, err := h.service.ProfitLoss(r.Context(), window)
	if err != nil {
		h.logger.Error("profit-loss report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) handleProfitLossCSV(w http.ResponseWriter, r *http.Request) {
	window, err := reports.ParseWindow(r.URL.Query(), time.Now())
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	report, err := h.service.ProfitLoss(r.Context(), window)
	if err != nil {
		h.logger.Error("profit-loss report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	writeCSVHeader(w, "profit-loss")
	if err := export.WriteProfitLossCSV(w, report); err != nil {
		h.logger.Error("profit-loss csv write failed", slog.Any("error", err))
	}
}

func (h *Handler) handleBillDetail(w http.ResponseWriter, r *http.Request) {
	customerID, window, err := h.billDetailParams(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	report, err := h.service.BillDetail(r.Context(), customerID, window)
	if err != nil {
		h.logger.Error("bill detail report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) handleBillDetailCSV(w http.ResponseWriter, r *http.Request) {
	customerID, window, err := h.billDetailParams(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	report, err := h.service.BillDetail(r.Context(), customerID, window)
	if err != nil {
		h.logger.Error("bill detail report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	writeCSVHeader(w, "bill-detail")
	if err := export.WriteBillDetailCSV(w, report); err != nil {
		h.logger.Error("bill detail csv write failed", slog.Any("error", err))
	}
}

func (h *Handler) handleCustomersSheet(w http.ResponseWriter, r *http.Request) {
	window, err := reports.ParseWindow(r.URL.Query(), time.Now())
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	report, err := h.service.Customers(r.Context(), window)
	if err != nil {
		h.logger.Error("customer report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteCustomerCSV(&buf, report); err != nil {
		h.logger.Error("customer csv render failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	url, err := h.sheets.ExportSheet(r.Context(), "customers", buf.Bytes())
	if err != nil {
		if errors.Is(err, export.ErrSheetsDisabled) {
			httpx.Problem(w, http.StatusNotImplemented, "Not Implemented", err.Error())
			return
		}
		h.logger.Error("sheet export failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{"url": url})
}

func (h *Handler) supplierParams(r *http.Request) (reports.Window, *int64, error) {
	window, err := reports.ParseWindow(r.URL.Query(), time.Now())
	if err != nil {
		return reports.Window{}, nil, err
	}
	raw := r.URL.Query().Get("cost_type_id")
	if raw == "" {
		return window, nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return reports.Window{}, nil, errInvalidCostType
	}
	return window, &id, nil
}

func (h *Handler) billDetailParams(r *http.Request) (int64, reports.Window, error) {
	customerID, err := strconv.ParseInt(chi.URLParam(r, "customerID"), 10, 64)
	if err != nil || customerID <= 0 {
		return 0, reports.Window{}, errInvalidCustomer
	}
	window, err := reports.ParseWindow(r.URL.Query(), time.Now())
	if err != nil {
		return 0, reports.Window{}, err
	}
	return customerID, window, nil
}

func writeCSVHeader(w http.ResponseWriter, name string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.csv"`)
	w.WriteHeader(http.StatusOK)
}
