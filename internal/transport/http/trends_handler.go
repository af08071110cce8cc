package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "kpicli/internal/errors"
	"kpicli/internal/services"
)

// TrendsHandler serves the daily summary and trend endpoints.
type TrendsHandler struct {
	service *services.TrendsService
	logger  *slog.Logger
}

// NewTrendsHandler creates a trends handler.
func NewTrendsHandler(service *services.TrendsService, logger *slog.Logger) *TrendsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrendsHandler{
		service: service,
		logger:  logger.With(slog.String("component", "trends_handler")),
	}
}

// Routes returns the trends routes.
func (h *TrendsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.GetTrends)
	r.Get("/summary", h.GetSummary)
	r.Get("/dates", h.GetDates)

	return r
}

// GetSummary handles GET /api/trends/summary?date=
func (h *TrendsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		apierrors.WriteError(w, apierrors.ErrValidation("date", "is required"))
		return
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		apierrors.WriteError(w, apierrors.ErrValidation("date", "must be a YYYY-MM-DD date"))
		return
	}

	summary, err := h.service.Summary(r.Context(), date)
	if err != nil && !errors.Is(err, services.ErrIncompleteSummary) {
		h.writeServiceError(w, r, err)
		return
	}

	// An incomplete summary is still returned; missing metrics carry
	// valid=false and the flag below tells the client.
	render.JSON(w, r, map[string]interface{}{
		"summary":  summary,
		"complete": err == nil,
	})
}

// GetTrends handles GET /api/trends?from=&to=
func (h *TrendsHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	from, to, apiErr := parseRangeQuery(r)
	if apiErr != nil {
		apierrors.WriteError(w, apiErr)
		return
	}

	report, err := h.service.Trends(r.Context(), from, to)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	render.JSON(w, r, report)
}

// GetDates handles GET /api/trends/dates
func (h *TrendsHandler) GetDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.service.Dates(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		formatted = append(formatted, d.Format("2006-01-02"))
	}
	render.JSON(w, r, map[string]interface{}{"dates": formatted})
}

func (h *TrendsHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.WarnContext(r.Context(), "trends request failed",
		slog.String("error", err.Error()))

	switch {
	case errors.Is(err, services.ErrNoRecords):
		apierrors.WriteError(w, apierrors.ErrNoRecordsForDate)
	case errors.Is(err, services.ErrNoDataForRange):
		apierrors.WriteError(w, apierrors.ErrNoDataForRange)
	default:
		apierrors.WriteError(w, apierrors.ErrInternalServer)
	}
}
