package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/api/request"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/validation"
)

// maxBodyBytes caps JSON request bodies, including uploaded project files.
const maxBodyBytes = 8 << 20

// parseJSON decodes the request body into a T. Unknown fields are rejected.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	if r.Body == nil {
		return v, errors.New("request body is required")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, errors.New("request body is required")
		}
		return v, fmt.Errorf("invalid JSON: %w", err)
	}
	return v, nil
}

// categoryParam reads the {category} path parameter.
func categoryParam(r *http.Request) (model.Category, error) {
	return validation.ValidateCategory(chi.URLParam(r, "category"))
}

// analysisParams reads the growth and variation query parameters.
func analysisParams(r *http.Request) (*request.AnalysisParams, error) {
	q := r.URL.Query()
	return request.ParseAnalysisParams(q.Get("inflow_growth"), q.Get("outflow_growth"), q.Get("variation"))
}
