package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rrinox/orcamentos/internal/domain/models"
	repo "github.com/rrinox/orcamentos/internal/repository/sheets"
)

const productsRange = "Produtos!A:C"

// Service reads the sellable product catalog from the Produtos worksheet.
// The catalog is reference data: loaded fresh per request, never written.
type Service struct {
	repo   repo.Repository
	logger *zap.Logger
}

// NewService wires a new catalog service instance.
func NewService(repository repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, logger: logger}
}

// List returns every catalog product. The first row is treated as the header
// and resolves column positions; rows without a product name are skipped and
// unparseable prices coerce to zero rather than failing the whole read.
func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	rows, err := s.repo.ReadRange(ctx, productsRange)
	if err != nil {
		return nil, fmt.Errorf("load products range: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	nameCol, codeCol, priceCol := headerColumns(rows[0])

	products := make([]models.Product, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := cellString(row, nameCol)
		if name == "" {
			continue
		}

		price, err := cellDecimal(row, priceCol)
		if err != nil {
			s.logger.Debug("coerced invalid product price to zero",
				zap.String("product", name), zap.Error(err))
			price = decimal.Zero
		}

		products = append(products, models.Product{
			Code:      cellString(row, codeCol),
			Name:      name,
			UnitPrice: price,
		})
	}

	return products, nil
}

// FindByCode returns the catalog product with the given code.
func (s *Service) FindByCode(ctx context.Context, code string) (models.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return models.Product{}, err
	}

	for _, p := range products {
		if p.Code == code {
			return p, nil
		}
	}

	return models.Product{}, fmt.Errorf("product %q not found in catalog", code)
}

// headerColumns maps the known header names to column indexes, falling back
// to the historical A/B/C layout when a header is missing.
func headerColumns(header []interface{}) (nameCol, codeCol, priceCol int) {
	nameCol, codeCol, priceCol = 0, 1, 2
	for i, cell := range header {
		switch strings.TrimSpace(fmt.Sprint(cell)) {
		case "Produto":
			nameCol = i
		case "Codigo":
			codeCol = i
		case "ValorUnitario":
			priceCol = i
		}
	}
	return nameCol, codeCol, priceCol
}

func cellString(row []interface{}, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[col]))
}

func cellDecimal(row []interface{}, col int) (decimal.Decimal, error) {
	raw := cellString(row, col)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("empty numeric value")
	}
	// Sheets may hand back values with a decimal comma depending on locale.
	raw = strings.ReplaceAll(raw, ",", ".")
	return decimal.NewFromString(raw)
}
