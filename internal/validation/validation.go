package validation

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
)

// Common validation errors
var (
	ErrInvalidUUID     = fmt.Errorf("invalid UUID format")
	ErrInvalidCategory = fmt.Errorf("invalid category")
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateCategory parses a category path parameter.
func ValidateCategory(raw string) (model.Category, error) {
	c, err := model.ParseCategory(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidCategory, raw)
	}
	return c, nil
}

// isFinite reports whether f is neither NaN nor infinite.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
