package handlers

import (
	"net/http"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/api/request"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/api/response"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/service"
)

// AnalysisHandler serves the valuation and sensitivity results.
// Growth rates are read from the query string on every request.
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler with the provided service dependency.
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
	}
}

// Analysis handles GET requests for the cash-flow schedule, NPV, IRR, payback and verdict.
//
// Endpoint: GET /api/analysis
// Query Parameters:
//   - inflow_growth: yearly revenue growth in percent (optional, default 0)
//   - outflow_growth: yearly expense growth in percent (optional, default 0)
//
// Response: 200 OK with Analysis
// Error: 400 Bad Request if a parameter is invalid
// Error: 500 Internal Server Error if the project cannot be read
func (h *AnalysisHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	params, err := analysisParams(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid analysis parameters", err.Error())
		return
	}

	analysis, err := h.analysisService.Analyze(r.Context(), params.Growth())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to analyze project", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, analysis)
}

// Sensitivity handles GET requests for the ranked tornado analysis.
//
// Endpoint: GET /api/analysis/sensitivity
// Query Parameters:
//   - variation: perturbation in percent (optional, default 20)
//   - inflow_growth, outflow_growth: as for /api/analysis
//
// Response: 200 OK with sensitivity Result
// Error: 400 Bad Request if a parameter is invalid
// Error: 500 Internal Server Error if the project cannot be read
func (h *AnalysisHandler) Sensitivity(w http.ResponseWriter, r *http.Request) {
	params, err := analysisParams(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid analysis parameters", err.Error())
		return
	}

	result, err := h.analysisService.Sensitivity(r.Context(), params.Growth(), params.VariationPct)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to run sensitivity analysis", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// GrowthExample handles GET requests showing how the current yearly revenue
// develops under a growth rate.
//
// Endpoint: GET /api/analysis/growth
// Query Parameters:
//   - growth: yearly growth in percent (optional, default 0)
//   - years: number of years to project (optional, default 3)
//
// Response: 200 OK with GrowthExampleResult
// Error: 400 Bad Request if a parameter is invalid
// Error: 500 Internal Server Error if the project cannot be read
func (h *AnalysisHandler) GrowthExample(w http.ResponseWriter, r *http.Request) {
	growth, years, err := request.ParseGrowthExampleParams(r.URL.Query().Get("growth"), r.URL.Query().Get("years"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid growth parameters", err.Error())
		return
	}

	result, err := h.analysisService.GrowthExample(r.Context(), growth, years)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to project growth", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
