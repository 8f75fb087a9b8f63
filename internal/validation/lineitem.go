package validation

import (
	"strings"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/api/request"
)

const (
	maxNameLength = 200
	maxUnitLength = 50
)

func ValidateCreateLineItem(req request.CreateLineItemRequest) error {
	errors := make(map[string]string)

	// Required field
	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > maxNameLength {
		errors["name"] = "name must be 200 characters or less"
	}

	if len(req.Unit) > maxUnitLength {
		errors["unit"] = "unit must be 50 characters or less"
	}

	if !isFinite(req.Quantity) || req.Quantity < 0 {
		errors["quantity"] = "quantity must be a non-negative number"
	}

	if !isFinite(req.UnitPrice) || req.UnitPrice < 0 {
		errors["unitPrice"] = "unitPrice must be a non-negative number"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateLineItem(req request.UpdateLineItemRequest) error {
	errors := make(map[string]string)

	// Only validate provided fields
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			errors["name"] = "name cannot be empty"
		} else if len(*req.Name) > maxNameLength {
			errors["name"] = "name must be 200 characters or less"
		}
	}

	if req.Unit != nil && len(*req.Unit) > maxUnitLength {
		errors["unit"] = "unit must be 50 characters or less"
	}

	if req.Quantity != nil && (!isFinite(*req.Quantity) || *req.Quantity < 0) {
		errors["quantity"] = "quantity must be a non-negative number"
	}

	if req.UnitPrice != nil && (!isFinite(*req.UnitPrice) || *req.UnitPrice < 0) {
		errors["unitPrice"] = "unitPrice must be a non-negative number"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateImportLineItems(req request.ImportLineItemsRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return &Error{Fields: map[string]string{"text": "text is required"}}
	}
	return nil
}
