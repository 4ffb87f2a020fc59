package drafts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rrinox/orcamentos/internal/domain/models"
	"github.com/rrinox/orcamentos/internal/repository/mongodb"
)

// ErrDraftNotFound indicates the referenced draft does not exist.
var ErrDraftNotFound = errors.New("draft not found")

// ErrLineNotFound indicates the referenced line does not exist in the draft.
var ErrLineNotFound = errors.New("line not found")

// Repository persists draft state between interactions.
type Repository interface {
	SaveDraft(ctx context.Context, draft models.Draft) error
	GetDraft(ctx context.Context, id string) (models.Draft, error)
	DeleteDraft(ctx context.Context, id string) error
}

// Catalog resolves products when a line is added.
type Catalog interface {
	FindByCode(ctx context.Context, code string) (models.Product, error)
}

// Service is the quotation builder: it accumulates line items for a draft
// under composition. Each line gets a monotonically increasing identifier
// within its draft, so removing a line never shifts edits onto another one,
// and the unit price is snapshotted from the catalog when the line is added.
type Service struct {
	repo    Repository
	catalog Catalog
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires a draft service instance.
func NewService(repository Repository, catalog Catalog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, catalog: catalog, logger: logger, now: time.Now}
}

// Create opens a new empty draft.
func (s *Service) Create(ctx context.Context, req models.CreateDraftRequest) (models.Draft, error) {
	now := s.now()
	draft := models.Draft{
		ID:           uuid.NewString(),
		Client:       req.Client,
		PaymentTerms: req.PaymentTerms,
		ValidityDays: req.ValidityDays,
		Observations: req.Observations,
		NextLineID:   1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.SaveDraft(ctx, draft); err != nil {
		return models.Draft{}, err
	}

	s.logger.Info("draft created", zap.String("draft_id", draft.ID))
	return draft, nil
}

// Get loads a draft.
func (s *Service) Get(ctx context.Context, draftID string) (models.Draft, error) {
	draft, err := s.repo.GetDraft(ctx, draftID)
	if errors.Is(err, mongodb.ErrNotFound) {
		return models.Draft{}, ErrDraftNotFound
	}
	return draft, err
}

// Delete discards a draft. Discarding an unknown draft is a no-op.
func (s *Service) Delete(ctx context.Context, draftID string) error {
	return s.repo.DeleteDraft(ctx, draftID)
}

// AddLine appends the given catalog product to the draft with quantity 1.
// The unit price is copied from the catalog entry at this moment; later
// catalog price changes leave the line untouched.
func (s *Service) AddLine(ctx context.Context, draftID, productCode string) (models.Draft, error) {
	draft, err := s.Get(ctx, draftID)
	if err != nil {
		return models.Draft{}, err
	}

	product, err := s.catalog.FindByCode(ctx, productCode)
	if err != nil {
		return models.Draft{}, fmt.Errorf("resolve product for new line: %w", err)
	}

	draft.Lines = append(draft.Lines, models.LineItem{
		ID:        draft.NextLineID,
		Code:      product.Code,
		Product:   product.Name,
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: product.UnitPrice,
	})
	draft.NextLineID++

	return s.save(ctx, draft)
}

// UpdateLine overwrites the quantity and/or unit price of one line. Subtotals
// are derived on read, so nothing else needs recomputing here.
func (s *Service) UpdateLine(ctx context.Context, draftID string, lineID int, req models.UpdateLineRequest) (models.Draft, error) {
	draft, err := s.Get(ctx, draftID)
	if err != nil {
		return models.Draft{}, err
	}

	line := draft.Line(lineID)
	if line == nil {
		return models.Draft{}, ErrLineNotFound
	}

	if req.Quantity != nil {
		line.Quantity = decimal.NewFromFloat(*req.Quantity)
	}
	if req.UnitPrice != nil {
		line.UnitPrice = decimal.NewFromFloat(*req.UnitPrice)
	}

	return s.save(ctx, draft)
}

// RemoveLine deletes one line by identity. The identifiers of the remaining
// lines are untouched.
func (s *Service) RemoveLine(ctx context.Context, draftID string, lineID int) (models.Draft, error) {
	draft, err := s.Get(ctx, draftID)
	if err != nil {
		return models.Draft{}, err
	}

	kept := draft.Lines[:0]
	removed := false
	for _, line := range draft.Lines {
		if line.ID == lineID {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return models.Draft{}, ErrLineNotFound
	}
	draft.Lines = kept

	return s.save(ctx, draft)
}

// SaveRequest converts a draft into the payload consumed by the quotation
// lifecycle on final submission.
func (s *Service) SaveRequest(ctx context.Context, draftID, number string) (models.SaveQuotationRequest, error) {
	draft, err := s.Get(ctx, draftID)
	if err != nil {
		return models.SaveQuotationRequest{}, err
	}

	lines := make([]models.SaveLinePayload, 0, len(draft.Lines))
	for _, line := range draft.Lines {
		lines = append(lines, models.SaveLinePayload{
			Code:      line.Code,
			Product:   line.Product,
			Quantity:  line.Quantity.InexactFloat64(),
			UnitPrice: line.UnitPrice.InexactFloat64(),
		})
	}

	return models.SaveQuotationRequest{
		Number:       number,
		Client:       draft.Client,
		Lines:        lines,
		PaymentTerms: draft.PaymentTerms,
		ValidityDays: draft.ValidityDays,
		Observations: draft.Observations,
	}, nil
}

func (s *Service) save(ctx context.Context, draft models.Draft) (models.Draft, error) {
	draft.UpdatedAt = s.now()
	if err := s.repo.SaveDraft(ctx, draft); err != nil {
		return models.Draft{}, err
	}
	return draft, nil
}
