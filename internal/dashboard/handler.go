package dashboard

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/freightwise/freightwise/internal/finance"
	"github.com/freightwise/freightwise/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Overview)
}

func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	tf, err := finance.ParseTimeframe(r.URL.Query().Get("timeframe"))
	if err != nil || tf == finance.TimeframeCustom {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "timeframe must be week, month, quarter or year")
		return
	}

	overview, err := h.service.Overview(r.Context(), tf, time.Now())
	if err != nil {
		h.logger.Error("dashboard overview failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, overview)
}
