package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/api/request"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/api/response"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/service"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/validation"
)

// ProjectHandler handles HTTP requests that act on the project as a whole.
type ProjectHandler struct {
	projectService *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler with the provided service dependency.
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// GetProject handles GET requests for the settings and all three collections.
//
// Endpoint: GET /api/project
// Response: 200 OK with Project
// Error: 500 Internal Server Error if retrieval fails
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.Snapshot(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve project", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, project)
}

// UpdateSettings handles PUT requests to change the horizon or discount rate.
//
// Endpoint: PUT /api/project/settings
// Request Body: UpdateSettingsRequest (horizonYears, discountRatePct; both optional)
// Response: 200 OK with ProjectSettings
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if the update fails
func (h *ProjectHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateSettingsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateSettings(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	settings, err := h.projectService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to update settings", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, settings)
}

// Reset handles POST requests to replace the project with the sample data.
//
// Endpoint: POST /api/project/reset
// Response: 200 OK with LoadResult
// Error: 500 Internal Server Error if the reset fails
func (h *ProjectHandler) Reset(w http.ResponseWriter, r *http.Request) {
	result, err := h.projectService.ResetToDefault(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to reset project", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Clear handles POST requests to remove every line item. Settings are kept.
//
// Endpoint: POST /api/project/clear
// Response: 200 OK with LoadResult
// Error: 500 Internal Server Error if clearing fails
func (h *ProjectHandler) Clear(w http.ResponseWriter, r *http.Request) {
	result, err := h.projectService.Clear(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to clear project", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// DownloadFile handles GET requests for the portable project document.
//
// Endpoint: GET /api/project/file
// Response: 200 OK with the project JSON as an attachment
// Error: 500 Internal Server Error if encoding fails
func (h *ProjectHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	data, err := h.projectService.ExportProjectFile(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToExport.Error(), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", attachment("feasibility_project", "json"))
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck // client went away; nothing left to report
}

// UploadFile handles POST requests carrying a project document. The stored
// project is replaced. Malformed JSON is repaired when possible.
//
// Endpoint: POST /api/project/file
// Request Body: project document
// Response: 200 OK with LoadResult (status loaded or repaired)
// Error: 400 Bad Request if the document cannot be read
// Error: 500 Internal Server Error if storing fails
func (h *ProjectHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.projectService.LoadProjectFile(r.Context(), data)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidProjectFile) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidProjectFile.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveProject.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// attachment builds a Content-Disposition value with a timestamped file name.
func attachment(base, ext string) string {
	return fmt.Sprintf(`attachment; filename="%s_%s.%s"`, base, time.Now().Format("20060102_150405"), ext)
}
