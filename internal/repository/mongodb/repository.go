package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rrinox/orcamentos/internal/domain/models"
)

// ErrNotFound is returned when a document or draft does not exist.
var ErrNotFound = errors.New("not found")

// StoredDocument is a rendered quotation PDF kept for later download.
type StoredDocument struct {
	Number    string    `bson:"_id"`
	Name      string    `bson:"name"`
	Data      []byte    `bson:"data"`
	CreatedAt time.Time `bson:"created_at"`
}

// Repository provides MongoDB persistence for rendered documents and
// in-progress quotation drafts.
type Repository struct {
	client *mongo.Client
	dbName string
}

// NewRepository connects to MongoDB and verifies the connection.
func NewRepository(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{client: client, dbName: dbName}, nil
}

func (r *Repository) documents() *mongo.Collection {
	return r.client.Database(r.dbName).Collection("documents")
}

func (r *Repository) drafts() *mongo.Collection {
	return r.client.Database(r.dbName).Collection("drafts")
}

// SaveDocument stores (or replaces) the rendered PDF for a quotation number.
func (r *Repository) SaveDocument(ctx context.Context, doc StoredDocument) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.documents().ReplaceOne(ctx, bson.M{"_id": doc.Number}, doc, opts); err != nil {
		return fmt.Errorf("failed to store document %s: %w", doc.Name, err)
	}
	return nil
}

// GetDocument loads the rendered PDF for a quotation number.
func (r *Repository) GetDocument(ctx context.Context, number string) (StoredDocument, error) {
	var doc StoredDocument
	err := r.documents().FindOne(ctx, bson.M{"_id": number}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return StoredDocument{}, ErrNotFound
	}
	if err != nil {
		return StoredDocument{}, fmt.Errorf("failed to load document for %s: %w", number, err)
	}
	return doc, nil
}

// draftDoc is the persisted shape of a draft. Decimal amounts are stored as
// strings; BSON has no codec for decimal.Decimal and strings round-trip
// without precision loss.
type draftDoc struct {
	ID           string      `bson:"_id"`
	Client       clientDoc   `bson:"client"`
	PaymentTerms string      `bson:"payment_terms"`
	ValidityDays int         `bson:"validity_days"`
	Observations string      `bson:"observations"`
	NextLineID   int         `bson:"next_line_id"`
	Lines        []draftLine `bson:"lines"`
	CreatedAt    time.Time   `bson:"created_at"`
	UpdatedAt    time.Time   `bson:"updated_at"`
}

type clientDoc struct {
	Name    string `bson:"name"`
	TaxID   string `bson:"tax_id"`
	Phone   string `bson:"phone"`
	Email   string `bson:"email"`
	Address string `bson:"address"`
}

type draftLine struct {
	ID        int    `bson:"id"`
	Code      string `bson:"code"`
	Product   string `bson:"product"`
	Quantity  string `bson:"quantity"`
	UnitPrice string `bson:"unit_price"`
}

// SaveDraft inserts or replaces a draft.
func (r *Repository) SaveDraft(ctx context.Context, draft models.Draft) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.drafts().ReplaceOne(ctx, bson.M{"_id": draft.ID}, toDraftDoc(draft), opts); err != nil {
		return fmt.Errorf("failed to store draft %s: %w", draft.ID, err)
	}
	return nil
}

// GetDraft loads a draft by identifier.
func (r *Repository) GetDraft(ctx context.Context, id string) (models.Draft, error) {
	var doc draftDoc
	err := r.drafts().FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Draft{}, ErrNotFound
	}
	if err != nil {
		return models.Draft{}, fmt.Errorf("failed to load draft %s: %w", id, err)
	}
	return fromDraftDoc(doc), nil
}

// DeleteDraft removes a draft. Deleting a missing draft is not an error.
func (r *Repository) DeleteDraft(ctx context.Context, id string) error {
	if _, err := r.drafts().DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", id, err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func toDraftDoc(d models.Draft) draftDoc {
	lines := make([]draftLine, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, draftLine{
			ID:        l.ID,
			Code:      l.Code,
			Product:   l.Product,
			Quantity:  l.Quantity.String(),
			UnitPrice: l.UnitPrice.String(),
		})
	}

	return draftDoc{
		ID:           d.ID,
		Client:       clientDoc(d.Client),
		PaymentTerms: d.PaymentTerms,
		ValidityDays: d.ValidityDays,
		Observations: d.Observations,
		NextLineID:   d.NextLineID,
		Lines:        lines,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func fromDraftDoc(doc draftDoc) models.Draft {
	lines := make([]models.LineItem, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		lines = append(lines, models.LineItem{
			ID:        l.ID,
			Code:      l.Code,
			Product:   l.Product,
			Quantity:  decimalOrZero(l.Quantity),
			UnitPrice: decimalOrZero(l.UnitPrice),
		})
	}

	return models.Draft{
		ID:           doc.ID,
		Client:       models.ClientInfo(doc.Client),
		PaymentTerms: doc.PaymentTerms,
		ValidityDays: doc.ValidityDays,
		Observations: doc.Observations,
		NextLineID:   doc.NextLineID,
		Lines:        lines,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

func decimalOrZero(raw string) decimal.Decimal {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return value
}
