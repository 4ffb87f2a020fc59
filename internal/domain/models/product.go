package models

import "github.com/shopspring/decimal"

// Product is one sellable catalog entry. Catalog data is reference only:
// it is read from the spreadsheet per request and never mutated here.
type Product struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
