package quotations

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rrinox/orcamentos/internal/domain/models"
	"github.com/rrinox/orcamentos/internal/repository/mongodb"
	"github.com/rrinox/orcamentos/pkg/pdf"
)

const (
	recordDateLayout   = "02/01/2006 15:04"
	validityDateLayout = "02/01/2006"
)

// DocumentArchive stores and retrieves rendered quotation PDFs.
type DocumentArchive interface {
	SaveDocument(ctx context.Context, doc mongodb.StoredDocument) error
	GetDocument(ctx context.Context, number string) (mongodb.StoredDocument, error)
}

// Renderer produces the printable document for a finalized quotation.
type Renderer interface {
	Render(q pdf.Quotation) ([]byte, error)
}

// Notifier announces lifecycle events over an outbound channel. A nil
// notifier disables the channel entirely.
type Notifier interface {
	QuotationSaved(ctx context.Context, rec models.QuotationRecord) error
	QuotationAccepted(ctx context.Context, rec models.QuotationRecord) error
}

// Service drives the quotation lifecycle: numbering, totals, document
// rendering, persistence and notifications.
type Service struct {
	store    *Store
	archive  DocumentArchive
	renderer Renderer
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires the quotation lifecycle service.
func NewService(store *Store, archive DocumentArchive, renderer Renderer, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		archive:  archive,
		renderer: renderer,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// List returns every stored quotation record.
func (s *Service) List(ctx context.Context) ([]models.QuotationRecord, error) {
	return s.store.List(ctx)
}

// Save finalizes a quotation: it allocates the next sequence number (unless
// the caller supplied one), recomputes every subtotal and the total from the
// submitted quantities and unit prices, renders the PDF, appends the record
// and archives the document. Rendering and appending are fatal to the save;
// archive and notification failures after a successful append are logged and
// the record is still returned.
func (s *Service) Save(ctx context.Context, req models.SaveQuotationRequest) (models.QuotationRecord, error) {
	lines := make([]models.LineItem, 0, len(req.Lines))
	for i, payload := range req.Lines {
		lines = append(lines, models.LineItem{
			ID:        i + 1,
			Code:      payload.Code,
			Product:   payload.Product,
			Quantity:  decimal.NewFromFloat(payload.Quantity),
			UnitPrice: decimal.NewFromFloat(payload.UnitPrice),
		})
	}

	number := req.Number
	if number == "" {
		existing, err := s.store.List(ctx)
		if err != nil {
			return models.QuotationRecord{}, fmt.Errorf("allocate quotation number: %w", err)
		}
		numbers := make([]string, 0, len(existing))
		for _, rec := range existing {
			numbers = append(numbers, rec.Number)
		}
		number = NextNumber(numbers)
	}

	now := s.now()
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}

	itemsJSON, err := models.EncodeItems(lines)
	if err != nil {
		return models.QuotationRecord{}, err
	}

	validityDays, validityDate := "", ""
	if req.ValidityDays > 0 {
		validityDays = strconv.Itoa(req.ValidityDays)
		validityDate = now.AddDate(0, 0, req.ValidityDays).Format(validityDateLayout)
	}

	rec := models.QuotationRecord{
		Number:       number,
		Date:         now.Format(recordDateLayout),
		Client:       req.Client,
		Total:        &total,
		Status:       string(models.StatusSent),
		Observations: req.Observations,
		PaymentTerms: req.PaymentTerms,
		ValidityDays: validityDays,
		ValidityDate: validityDate,
		ItemsJSON:    itemsJSON,
		DocumentName: pdf.DocumentName(number),
	}

	document, err := s.renderer.Render(s.payloadFor(rec, lines, total))
	if err != nil {
		return models.QuotationRecord{}, fmt.Errorf("render quotation document: %w", err)
	}

	if err := s.store.Append(ctx, rec); err != nil {
		return models.QuotationRecord{}, err
	}

	if err := s.archive.SaveDocument(ctx, mongodb.StoredDocument{
		Number:    rec.Number,
		Name:      rec.DocumentName,
		Data:      document,
		CreatedAt: now,
	}); err != nil {
		// The record is already persisted; losing the archived copy only
		// affects later downloads.
		s.logger.Error("failed to archive quotation document",
			zap.String("number", rec.Number), zap.Error(err))
	}

	if s.notifier != nil {
		if err := s.notifier.QuotationSaved(ctx, rec); err != nil {
			s.logger.Warn("failed to send save notification",
				zap.String("number", rec.Number), zap.Error(err))
		}
	}

	return rec, nil
}

// Document returns the archived PDF for a quotation number.
func (s *Service) Document(ctx context.Context, number string) (mongodb.StoredDocument, error) {
	return s.archive.GetDocument(ctx, number)
}

// UpdateStatus applies a batch of status changes and announces quotations
// that moved to the accepted state.
func (s *Service) UpdateStatus(ctx context.Context, updates map[string]models.Status) error {
	var accepted []models.QuotationRecord
	if s.notifier != nil {
		records, err := s.store.List(ctx)
		if err != nil {
			return err
		}
		for _, rec := range records {
			status, ok := updates[rec.Number]
			if ok && status == models.StatusAccepted && rec.Status != string(models.StatusAccepted) {
				rec.Status = string(models.StatusAccepted)
				accepted = append(accepted, rec)
			}
		}
	}

	if err := s.store.UpdateStatus(ctx, updates); err != nil {
		return err
	}

	for _, rec := range accepted {
		if err := s.notifier.QuotationAccepted(ctx, rec); err != nil {
			s.logger.Warn("failed to send acceptance notification",
				zap.String("number", rec.Number), zap.Error(err))
		}
	}

	return nil
}

// Delete removes a quotation by number.
func (s *Service) Delete(ctx context.Context, number string) error {
	return s.store.DeleteByNumber(ctx, number)
}

func (s *Service) payloadFor(rec models.QuotationRecord, lines []models.LineItem, total decimal.Decimal) pdf.Quotation {
	pdfLines := make([]pdf.Line, 0, len(lines))
	for _, line := range lines {
		pdfLines = append(pdfLines, pdf.Line{
			Code:      line.Code,
			Product:   line.Product,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal(),
		})
	}

	return pdf.Quotation{
		Number: rec.Number,
		Date:   rec.Date,
		Client: pdf.Client{
			Name:    rec.Client.Name,
			TaxID:   rec.Client.TaxID,
			Phone:   rec.Client.Phone,
			Email:   rec.Client.Email,
			Address: rec.Client.Address,
		},
		Lines:        pdfLines,
		Total:        total,
		PaymentTerms: rec.PaymentTerms,
		ValidityDate: rec.ValidityDate,
		Observations: rec.Observations,
	}
}
