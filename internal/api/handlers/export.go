package handlers

import (
	"bytes"
	"net/http"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/api/response"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/report"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves downloadable documents.
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new ExportHandler with the provided service dependency.
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// Workbook handles GET requests for the cash-flow table as an Excel workbook.
//
// Endpoint: GET /api/export/xlsx
// Query Parameters: inflow_growth, outflow_growth (as for /api/analysis)
// Response: 200 OK with the workbook as an attachment
// Error: 400 Bad Request if a parameter is invalid
// Error: 500 Internal Server Error if the export fails
func (h *ExportHandler) Workbook(w http.ResponseWriter, r *http.Request) {
	params, err := analysisParams(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid analysis parameters", err.Error())
		return
	}

	// Buffered so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := h.exportService.Workbook(r.Context(), params.Growth(), &buf); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToExport.Error(), err.Error())
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", attachment("feasibility_analysis", "xlsx"))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w) //nolint:errcheck // client went away; nothing left to report
}

// Report handles GET requests for the written report.
//
// Endpoint: GET /api/export/report
// Query Parameters:
//   - format: md (default) or html
//   - variation, inflow_growth, outflow_growth: as for /api/analysis/sensitivity
//
// Response: 200 OK with text/markdown or text/html
// Error: 400 Bad Request if a parameter is invalid
// Error: 500 Internal Server Error if rendering fails
func (h *ExportHandler) Report(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid report format", err.Error())
		return
	}

	params, err := analysisParams(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid analysis parameters", err.Error())
		return
	}

	var buf bytes.Buffer
	if err := h.exportService.Report(r.Context(), params.Growth(), params.VariationPct, format, &buf); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToExport.Error(), err.Error())
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w) //nolint:errcheck // client went away; nothing left to report
}
