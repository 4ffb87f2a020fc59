package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ClientInfo is the customer block carried on every quotation.
type ClientInfo struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// LineItem is one product entry within a draft or saved quotation. The unit
// price is a snapshot taken when the line was added; later catalog edits do
// not touch it. IDs are monotonic per draft and never reused after removal.
type LineItem struct {
	ID        int             `json:"id"`
	Code      string          `json:"code"`
	Product   string          `json:"product"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Subtotal is always derived from the current quantity and unit price.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// QuotationRecord mirrors one row of the quotation table. String fields hold
// whatever the sheet holds; Total is nil when the stored value is not numeric.
type QuotationRecord struct {
	Number       string           `json:"number"`
	Date         string           `json:"date"`
	Client       ClientInfo       `json:"client"`
	Total        *decimal.Decimal `json:"total"`
	Status       string           `json:"status"`
	Observations string           `json:"observations"`
	PaymentTerms string           `json:"payment_terms"`
	ValidityDays string           `json:"validity_days"`
	ValidityDate string           `json:"validity_date"`
	ItemsJSON    string           `json:"items_json"`
	DocumentName string           `json:"document_name"`
}

// ItemJSON is the wire shape of one line inside the ItemsJSON column. The
// Portuguese keys match the historical spreadsheet contents, so older rows
// stay readable.
type ItemJSON struct {
	Code      string  `json:"Codigo"`
	Product   string  `json:"Produto"`
	Quantity  float64 `json:"Quantidade"`
	UnitPrice float64 `json:"ValorUnitario"`
	Subtotal  float64 `json:"Subtotal"`
}

// EncodeItems serializes line items into the ItemsJSON column format.
func EncodeItems(lines []LineItem) (string, error) {
	wire := make([]ItemJSON, 0, len(lines))
	for _, l := range lines {
		wire = append(wire, ItemJSON{
			Code:      l.Code,
			Product:   l.Product,
			Quantity:  l.Quantity.InexactFloat64(),
			UnitPrice: l.UnitPrice.InexactFloat64(),
			Subtotal:  l.Subtotal().InexactFloat64(),
		})
	}

	raw, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("encode items: %w", err)
	}
	return string(raw), nil
}

// DecodeItems parses an ItemsJSON column value.
func DecodeItems(raw string) ([]ItemJSON, error) {
	if raw == "" {
		return nil, nil
	}

	var wire []ItemJSON
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return wire, nil
}
