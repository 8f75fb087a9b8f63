package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/api/request"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/api/response"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/service"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/validation"
)

// LineItemHandler handles HTTP requests for the capex, inflow and outflow
// collections. The collection is selected by the {category} path parameter.
type LineItemHandler struct {
	lineItemService *service.LineItemService
}

// NewLineItemHandler creates a new LineItemHandler with the provided service dependency.
func NewLineItemHandler(lineItemService *service.LineItemService) *LineItemHandler {
	return &LineItemHandler{
		lineItemService: lineItemService,
	}
}

// ImportResponse reports the outcome of a bulk import.
type ImportResponse struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// ListItems handles GET requests for all items of a category in display order.
//
// Endpoint: GET /api/item/{category}
// Response: 200 OK with array of LineItem
// Error: 400 Bad Request if the category is unknown
// Error: 500 Internal Server Error if retrieval fails
func (h *LineItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	category, err := categoryParam(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidCategory.Error(), err.Error())
		return
	}

	items, err := h.lineItemService.ListItems(r.Context(), category)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveItems.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, items)
}

// CreateItem handles POST requests to append a new item to a category.
//
// Endpoint: POST /api/item/{category}
// Request Body: CreateLineItemRequest (name, quantity, unit, unitPrice)
// Response: 201 Created with LineItem
// Error: 400 Bad Request if the category is unknown or validation fails
// Error: 500 Internal Server Error if creation fails
func (h *LineItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	category, err := categoryParam(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidCategory.Error(), err.Error())
		return
	}

	req, err := parseJSON[request.CreateLineItemRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateLineItem(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	item, err := h.lineItemService.CreateItem(r.Context(), category, req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create line item", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT requests to change fields of an existing item.
//
// Endpoint: PUT /api/item/{category}/{uuid}
// Request Body: UpdateLineItemRequest (all fields optional)
// Response: 200 OK with updated LineItem
// Error: 400 Bad Request if the category is unknown or validation fails
// Error: 404 Not Found if the item is not in the category
// Error: 500 Internal Server Error if the update fails
func (h *LineItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	category, err := categoryParam(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidCategory.Error(), err.Error())
		return
	}
	itemID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateLineItemRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateLineItem(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	item, err := h.lineItemService.UpdateItem(r.Context(), category, itemID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrLineItemNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrLineItemNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update line item", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE requests to remove an item.
//
// Endpoint: DELETE /api/item/{category}/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if the category is unknown
// Error: 404 Not Found if the item is not in the category
// Error: 500 Internal Server Error if deletion fails
func (h *LineItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	category, err := categoryParam(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidCategory.Error(), err.Error())
		return
	}
	itemID := chi.URLParam(r, "uuid")

	if err := h.lineItemService.DeleteItem(r.Context(), category, itemID); err != nil {
		if errors.Is(err, apperrors.ErrLineItemNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrLineItemNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete line item", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// DuplicateItem handles POST requests to copy an item. The copy gets a new ID
// and is placed directly after the original.
//
// Endpoint: POST /api/item/{category}/{uuid}/duplicate
// Response: 201 Created with the new LineItem
// Error: 400 Bad Request if the category is unknown
// Error: 404 Not Found if the item is not in the category
// Error: 500 Internal Server Error if duplication fails
func (h *LineItemHandler) DuplicateItem(w http.ResponseWriter, r *http.Request) {
	category, err := categoryParam(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidCategory.Error(), err.Error())
		return
	}
	itemID := chi.URLParam(r, "uuid")

	item, err := h.lineItemService.DuplicateItem(r.Context(), category, itemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrLineItemNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrLineItemNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to duplicate line item", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, item)
}

// ImportItems handles POST requests carrying rows pasted from a spreadsheet.
// Each row is "name, quantity, unit, price" separated by tabs or commas.
// Rows that cannot be read are skipped and counted.
//
// Endpoint: POST /api/item/{category}/import
// Request Body: ImportLineItemsRequest (text)
// Response: 201 Created with ImportResponse
// Error: 400 Bad Request if no row could be imported (body still carries the counts)
// Error: 500 Internal Server Error if storing the rows fails
func (h *LineItemHandler) ImportItems(w http.ResponseWriter, r *http.Request) {
	category, err := categoryParam(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidCategory.Error(), err.Error())
		return
	}

	req, err := parseJSON[request.ImportLineItemsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateImportLineItems(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.lineItemService.ImportItems(r.Context(), category, req.Text)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoImportRows) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrNoImportRows.Error(),
				ImportResponse{Added: result.Added, Skipped: result.Skipped})
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to import line items", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, ImportResponse{Added: result.Added, Skipped: result.Skipped})
}
