package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "kpicli/internal/errors"
	"kpicli/internal/exporter"
	"kpicli/internal/files"
	"kpicli/internal/services"
	"kpicli/internal/validation"
)

// ReportHandler serves the analysis-report endpoints: sheet-date listing,
// report generation, CSV download and workbook upload.
type ReportHandler struct {
	service        *services.ReportService
	manager        *files.Manager
	validator      *validation.FileValidator
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewReportHandler creates a report handler.
func NewReportHandler(service *services.ReportService, manager *files.Manager, maxUploadBytes int64, logger *slog.Logger) *ReportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportHandler{
		service:        service,
		manager:        manager,
		validator:      validation.NewFileValidator(logger),
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "report_handler")),
	}
}

// Routes returns the report routes.
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/workbooks", h.GetWorkbooks)
	r.Get("/dates", h.GetDates)
	r.Get("/", h.GetReport)
	r.Get("/download", h.DownloadReport)
	r.Post("/upload", h.UploadWorkbook)

	return r
}

// GetWorkbooks handles GET /api/report/workbooks and lists the workbooks
// available for report generation, uploads first.
func (h *ReportHandler) GetWorkbooks(w http.ResponseWriter, r *http.Request) {
	workbooks, err := h.manager.ListWorkbooks()
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list workbooks",
			slog.String("error", err.Error()))
		apierrors.WriteError(w, apierrors.FileSystemError("list workbooks", err))
		return
	}

	type workbookInfo struct {
		Name     string    `json:"name"`
		Size     int64     `json:"size"`
		Modified time.Time `json:"modified"`
	}
	out := make([]workbookInfo, 0, len(workbooks))
	for _, wb := range workbooks {
		out = append(out, workbookInfo{Name: wb.Name, Size: wb.Size, Modified: wb.ModTime})
	}

	render.JSON(w, r, map[string]interface{}{"workbooks": out})
}

// GetDates handles GET /api/report/dates?file=
func (h *ReportHandler) GetDates(w http.ResponseWriter, r *http.Request) {
	file := r.URL.Query().Get("file")
	if file == "" {
		apierrors.WriteError(w, apierrors.ErrValidation("file", "is required"))
		return
	}
	if apiErr := validateFileParam(file); apiErr != nil {
		apierrors.WriteError(w, apiErr)
		return
	}

	dates, err := h.service.SheetDates(r.Context(), file)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"file":  file,
		"dates": dates,
	})
}

// GetReport handles GET /api/report?file=&date=
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	file, date, apiErr := parseReportQuery(r)
	if apiErr != nil {
		apierrors.WriteError(w, apiErr)
		return
	}

	report, err := h.service.Generate(r.Context(), file, date)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	render.JSON(w, r, report)
}

// DownloadReport handles GET /api/report/download?file=&date= and streams
// the report as a CSV attachment.
func (h *ReportHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	file, date, apiErr := parseReportQuery(r)
	if apiErr != nil {
		apierrors.WriteError(w, apiErr)
		return
	}

	report, err := h.service.Generate(r.Context(), file, date)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.FileName()))

	if err := exporter.WriteReport(w, report); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to stream report CSV",
			slog.String("error", err.Error()))
	}
}

// UploadWorkbook handles POST /api/report/upload (multipart form, field
// "file").
func (h *ReportHandler) UploadWorkbook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		apierrors.WriteError(w, apierrors.InvalidRequestWithError(err))
		return
	}

	src, header, err := r.FormFile("file")
	if err != nil {
		apierrors.WriteError(w, apierrors.ErrValidation("file", "multipart field is required"))
		return
	}
	defer src.Close()

	if err := h.validator.ValidateUploadName(header.Filename); err != nil {
		apierrors.WriteError(w, apierrors.ErrValidation("file", err.Error()))
		return
	}

	path, err := h.manager.SaveUpload(header.Filename, src)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to save upload",
			slog.String("name", header.Filename),
			slog.String("error", err.Error()))
		apierrors.WriteError(w, apierrors.FileSystemError("upload", err))
		return
	}

	h.logger.InfoContext(r.Context(), "workbook uploaded",
		slog.String("name", header.Filename),
		slog.String("path", path),
		slog.Int64("size", header.Size))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"file": header.Filename,
		"size": header.Size,
	})
}

func (h *ReportHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.WarnContext(r.Context(), "report request failed",
		slog.String("error", err.Error()))

	switch {
	case errors.Is(err, services.ErrWorkbookNotFound):
		apierrors.WriteError(w, apierrors.NotFoundError("workbook"))
	case errors.Is(err, services.ErrNoSheetForDate):
		apierrors.WriteError(w, apierrors.ErrSheetNotFound)
	case errors.Is(err, services.ErrNoRowsExtracted):
		apierrors.WriteError(w, apierrors.ErrNoDataExtracted)
	default:
		apierrors.WriteError(w, apierrors.UnprocessableFileError(err))
	}
}
