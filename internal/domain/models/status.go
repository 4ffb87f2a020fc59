package models

import "fmt"

// Status enumerates the lifecycle states of a saved quotation. The values are
// the exact strings stored in the spreadsheet and shown to users.
type Status string

const (
	StatusSent        Status = "orçamento enviado"
	StatusNegotiating Status = "em negociação"
	StatusRejected    Status = "recusado"
	StatusAccepted    Status = "aceito"
)

// AllStatuses lists every valid status in display order.
func AllStatuses() []Status {
	return []Status{StatusSent, StatusNegotiating, StatusRejected, StatusAccepted}
}

// ParseStatus validates a raw status string. Transitions between statuses are
// deliberately unconstrained; only membership in the enum is checked.
func ParseStatus(raw string) (Status, error) {
	for _, s := range AllStatuses() {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", raw)
}
