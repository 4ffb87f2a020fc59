package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Draft is an in-progress quotation being composed. It replaces UI session
// state with an explicit value object: lines carry their own identifiers so
// removals never shift edits onto a neighbouring line.
type Draft struct {
	ID           string     `json:"id"`
	Client       ClientInfo `json:"client"`
	PaymentTerms string     `json:"payment_terms"`
	ValidityDays int        `json:"validity_days"`
	Observations string     `json:"observations"`
	NextLineID   int        `json:"-"`
	Lines        []LineItem `json:"lines"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Total sums the current line subtotals. It is recomputed on every call and
// never cached, so it always reflects the present line state.
func (d *Draft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Line returns the line with the given identifier, or nil.
func (d *Draft) Line(lineID int) *LineItem {
	for i := range d.Lines {
		if d.Lines[i].ID == lineID {
			return &d.Lines[i]
		}
	}
	return nil
}
