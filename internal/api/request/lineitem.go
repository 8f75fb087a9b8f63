package request

// CreateLineItemRequest represents the request body for creating a line item.
type CreateLineItemRequest struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unitPrice"`
}

// UpdateLineItemRequest represents a partial update; nil fields are left unchanged.
type UpdateLineItemRequest struct {
	Name      *string  `json:"name,omitempty"`
	Quantity  *float64 `json:"quantity,omitempty"`
	Unit      *string  `json:"unit,omitempty"`
	UnitPrice *float64 `json:"unitPrice,omitempty"`
}

// ImportLineItemsRequest carries pasted spreadsheet rows.
type ImportLineItemsRequest struct {
	Text string `json:"text"`
}
