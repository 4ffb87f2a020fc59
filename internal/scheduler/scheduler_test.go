package scheduler

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rrinox/orcamentos/internal/domain/models"
)

func total(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestComposeSummaryGroupsByStatus(t *testing.T) {
	records := []models.QuotationRecord{
		{Number: "00001", Status: string(models.StatusSent), Total: total("100.00")},
		{Number: "00002", Status: string(models.StatusSent), Total: total("50.00")},
		{Number: "00003", Status: string(models.StatusAccepted), Total: total("1000.00")},
		{Number: "00004", Status: "rabisco"}, // unknown status, grouped apart
	}

	summary := ComposeSummary(records)

	assert.Contains(t, summary, "orçamento enviado: 2 (R$ 150,00)")
	assert.Contains(t, summary, "aceito: 1 (R$ 1.000,00)")
	assert.Contains(t, summary, "outros: 1 (R$ 0,00)")
	assert.NotContains(t, summary, "em negociação")
}

func TestComposeSummaryEmptyPipeline(t *testing.T) {
	assert.Contains(t, ComposeSummary(nil), "Nenhum orçamento registrado.")
}
