package models

// CreateDraftRequest opens a new quotation draft.
type CreateDraftRequest struct {
	Client       ClientInfo `json:"client"`
	PaymentTerms string     `json:"payment_terms"`
	ValidityDays int        `json:"validity_days"`
	Observations string     `json:"observations"`
}

// AddLineRequest appends a catalog product to a draft.
type AddLineRequest struct {
	ProductCode string `json:"product_code" binding:"required"`
}

// UpdateLineRequest overwrites quantity and/or unit price of one line.
// Nil fields are left untouched.
type UpdateLineRequest struct {
	Quantity  *float64 `json:"quantity"`
	UnitPrice *float64 `json:"unit_price"`
}

// SaveLinePayload is one line item supplied inline on save.
type SaveLinePayload struct {
	Code      string  `json:"code"`
	Product   string  `json:"product"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// SaveQuotationRequest finalizes a quotation. Either DraftID references a
// stored draft, or the client block and lines are supplied inline. A number
// may be provided to override the allocated sequence value.
type SaveQuotationRequest struct {
	DraftID      string            `json:"draft_id"`
	Number       string            `json:"number"`
	Client       ClientInfo        `json:"client"`
	Lines        []SaveLinePayload `json:"lines"`
	PaymentTerms string            `json:"payment_terms"`
	ValidityDays int               `json:"validity_days"`
	Observations string            `json:"observations"`
}

// UpdateStatusRequest maps quotation numbers to their new status value.
type UpdateStatusRequest struct {
	Updates map[string]string `json:"updates" binding:"required"`
}
