package quotations

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rrinox/orcamentos/internal/domain/models"
	repo "github.com/rrinox/orcamentos/internal/repository/sheets"
)

const quotationsRange = "Orcamentos!A:O"

// quotationColumns is the fixed schema of the quotation table. Column order
// matters: appends and rewrites always emit exactly these fifteen cells.
var quotationColumns = []string{
	"Numero", "Data", "Cliente", "CNPJ", "Telefone", "Email", "Endereco",
	"Total", "Status", "Observacoes", "Condicao", "ValidadeDias",
	"ValidadeData", "ItensJSON", "PDF_Name",
}

// Store persists quotation records in the Orcamentos worksheet. Appends are
// pure inserts; status updates and deletes rewrite the whole table. The mutex
// serializes rewrites within this process only — concurrent writers in other
// processes can still lose updates, which is accepted for this data volume.
type Store struct {
	repo   repo.Repository
	logger *zap.Logger
	mu     sync.Mutex
}

// NewStore wires a quotation store over the sheets repository.
func NewStore(repository repo.Repository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{repo: repository, logger: logger}
}

// List returns every stored quotation. Cells missing from short rows are
// synthesized as empty strings and an unparseable Total becomes nil, so a
// hand-edited sheet never breaks the listing.
func (s *Store) List(ctx context.Context) ([]models.QuotationRecord, error) {
	rows, err := s.repo.ReadRange(ctx, quotationsRange)
	if err != nil {
		return nil, fmt.Errorf("load quotations range: %w", err)
	}

	records := make([]models.QuotationRecord, 0, len(rows))
	for _, row := range dataRows(rows) {
		records = append(records, s.recordFromRow(row))
	}

	return records, nil
}

// Append adds one quotation row. Every schema column receives a value.
func (s *Store) Append(ctx context.Context, rec models.QuotationRecord) error {
	if err := s.repo.AppendRow(ctx, quotationsRange, rowFromRecord(rec)); err != nil {
		return fmt.Errorf("append quotation %s: %w", rec.Number, err)
	}

	s.logger.Info("quotation appended", zap.String("number", rec.Number))
	return nil
}

// UpdateStatus overwrites the status of every listed number that exists in
// the table. Numbers absent from the table are silently ignored. The change
// is applied as a full-table rewrite.
func (s *Store) UpdateStatus(ctx context.Context, updates map[string]models.Status) error {
	if len(updates) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.List(ctx)
	if err != nil {
		return err
	}

	changed := 0
	for i := range records {
		if status, ok := updates[records[i].Number]; ok {
			records[i].Status = string(status)
			changed++
		}
	}

	if err := s.rewrite(ctx, records); err != nil {
		return err
	}

	s.logger.Info("statuses updated", zap.Int("requested", len(updates)), zap.Int("changed", changed))
	return nil
}

// DeleteByNumber removes every row whose number matches. Deleting a number
// that is not present is a no-op, so repeated deletes are idempotent.
func (s *Store) DeleteByNumber(ctx context.Context, number string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.List(ctx)
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, rec := range records {
		if rec.Number != number {
			kept = append(kept, rec)
		}
	}

	if err := s.rewrite(ctx, kept); err != nil {
		return err
	}

	s.logger.Info("quotation deleted", zap.String("number", number), zap.Int("removed", len(records)-len(kept)))
	return nil
}

func (s *Store) rewrite(ctx context.Context, records []models.QuotationRecord) error {
	rows := make([][]interface{}, 0, len(records)+1)

	header := make([]interface{}, len(quotationColumns))
	for i, col := range quotationColumns {
		header[i] = col
	}
	rows = append(rows, header)

	for _, rec := range records {
		rows = append(rows, rowFromRecord(rec))
	}

	if err := s.repo.Overwrite(ctx, quotationsRange, rows); err != nil {
		return fmt.Errorf("rewrite quotation table: %w", err)
	}
	return nil
}

// dataRows strips the header row when present. Sheets created by this
// service always carry one, but a fresh worksheet may not.
func dataRows(rows [][]interface{}) [][]interface{} {
	if len(rows) > 0 && strings.EqualFold(cell(rows[0], 0), "Numero") {
		return rows[1:]
	}
	return rows
}

func (s *Store) recordFromRow(row []interface{}) models.QuotationRecord {
	rec := models.QuotationRecord{
		Number: cell(row, 0),
		Date:   cell(row, 1),
		Client: models.ClientInfo{
			Name:    cell(row, 2),
			TaxID:   cell(row, 3),
			Phone:   cell(row, 4),
			Email:   cell(row, 5),
			Address: cell(row, 6),
		},
		Status:       cell(row, 8),
		Observations: cell(row, 9),
		PaymentTerms: cell(row, 10),
		ValidityDays: cell(row, 11),
		ValidityDate: cell(row, 12),
		ItemsJSON:    cell(row, 13),
		DocumentName: cell(row, 14),
	}

	if raw := cell(row, 7); raw != "" {
		if total, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ".")); err == nil {
			rec.Total = &total
		} else {
			s.logger.Debug("coerced unparseable total to nil",
				zap.String("number", rec.Number), zap.String("raw", raw))
		}
	}

	return rec
}

func rowFromRecord(rec models.QuotationRecord) []interface{} {
	total := ""
	if rec.Total != nil {
		total = rec.Total.StringFixed(2)
	}

	return []interface{}{
		rec.Number,
		rec.Date,
		rec.Client.Name,
		rec.Client.TaxID,
		rec.Client.Phone,
		rec.Client.Email,
		rec.Client.Address,
		total,
		rec.Status,
		rec.Observations,
		rec.PaymentTerms,
		rec.ValidityDays,
		rec.ValidityDate,
		rec.ItemsJSON,
		rec.DocumentName,
	}
}

func cell(row []interface{}, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[col]))
}
