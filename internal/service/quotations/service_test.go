package quotations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrinox/orcamentos/internal/domain/models"
	"github.com/rrinox/orcamentos/internal/repository/mongodb"
	"github.com/rrinox/orcamentos/pkg/pdf"
)

type fakeArchive struct {
	saved map[string]mongodb.StoredDocument
	err   error
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{saved: make(map[string]mongodb.StoredDocument)}
}

func (f *fakeArchive) SaveDocument(_ context.Context, doc mongodb.StoredDocument) error {
	if f.err != nil {
		return f.err
	}
	f.saved[doc.Number] = doc
	return nil
}

func (f *fakeArchive) GetDocument(_ context.Context, number string) (mongodb.StoredDocument, error) {
	doc, ok := f.saved[number]
	if !ok {
		return mongodb.StoredDocument{}, mongodb.ErrNotFound
	}
	return doc, nil
}

type fakeRenderer struct {
	rendered []pdf.Quotation
	err      error
}

func (f *fakeRenderer) Render(q pdf.Quotation) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.rendered = append(f.rendered, q)
	return []byte("%PDF-fake"), nil
}

type fakeNotifier struct {
	saved    []string
	accepted []string
}

func (f *fakeNotifier) QuotationSaved(_ context.Context, rec models.QuotationRecord) error {
	f.saved = append(f.saved, rec.Number)
	return nil
}

func (f *fakeNotifier) QuotationAccepted(_ context.Context, rec models.QuotationRecord) error {
	f.accepted = append(f.accepted, rec.Number)
	return nil
}

func newTestService(repo *fakeSheetRepo, archive *fakeArchive, renderer *fakeRenderer, notifier Notifier) *Service {
	svc := NewService(NewStore(repo, nil), archive, renderer, notifier, nil)
	svc.now = func() time.Time {
		return time.Date(2026, 6, 1, 10, 30, 0, 0, time.UTC)
	}
	return svc
}

func saveRequest() models.SaveQuotationRequest {
	return models.SaveQuotationRequest{
		Client: models.ClientInfo{Name: "Acme", TaxID: "11.111.111/0001-11"},
		Lines: []models.SaveLinePayload{
			{Code: "P1", Product: "Valve", Quantity: 3, UnitPrice: 10},
			{Code: "P2", Product: "Pipe", Quantity: 2, UnitPrice: 7.5},
		},
		PaymentTerms: "30 dias",
		ValidityDays: 7,
		Observations: "Entrega combinada",
	}
}

func TestSaveAllocatesNextNumberAndRecomputesTotal(t *testing.T) {
	repo := newFakeSheetRepo()
	repo.rows[quotationsRange] = [][]interface{}{
		headerRow(),
		quotationRow("00001", "Old", "10.00", string(models.StatusSent)),
		quotationRow("00007", "Old", "10.00", string(models.StatusSent)),
		quotationRow("bad", "Old", "10.00", string(models.StatusSent)),
	}
	archive := newFakeArchive()
	renderer := &fakeRenderer{}
	notifier := &fakeNotifier{}
	svc := newTestService(repo, archive, renderer, notifier)

	rec, err := svc.Save(context.Background(), saveRequest())
	require.NoError(t, err)

	assert.Equal(t, "00008", rec.Number)
	assert.Equal(t, "01/06/2026 10:30", rec.Date)
	assert.Equal(t, string(models.StatusSent), rec.Status)
	require.NotNil(t, rec.Total)
	assert.Equal(t, "45.00", rec.Total.StringFixed(2))
	assert.Equal(t, "orcamento_00008.pdf", rec.DocumentName)
	assert.Equal(t, "7", rec.ValidityDays)
	assert.Equal(t, "08/06/2026", rec.ValidityDate)

	// Record landed in the sheet and the document in the archive.
	records, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "00008", records[3].Number)

	doc, err := svc.Document(context.Background(), "00008")
	require.NoError(t, err)
	assert.Equal(t, "orcamento_00008.pdf", doc.Name)
	assert.NotEmpty(t, doc.Data)

	assert.Equal(t, []string{"00008"}, notifier.saved)
}

func TestSaveHonorsClientSuppliedNumber(t *testing.T) {
	repo := newFakeSheetRepo()
	svc := newTestService(repo, newFakeArchive(), &fakeRenderer{}, nil)

	req := saveRequest()
	req.Number = "00500"

	rec, err := svc.Save(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "00500", rec.Number)
}

func TestSaveSerializesItemsWithSnapshotPrices(t *testing.T) {
	repo := newFakeSheetRepo()
	svc := newTestService(repo, newFakeArchive(), &fakeRenderer{}, nil)

	rec, err := svc.Save(context.Background(), saveRequest())
	require.NoError(t, err)

	items, err := models.DecodeItems(rec.ItemsJSON)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "P1", items[0].Code)
	assert.Equal(t, 3.0, items[0].Quantity)
	assert.Equal(t, 10.0, items[0].UnitPrice)
	assert.Equal(t, 30.0, items[0].Subtotal)
	assert.Equal(t, 15.0, items[1].Subtotal)
}

func TestSaveRenderFailureAbortsPersistence(t *testing.T) {
	repo := newFakeSheetRepo()
	renderer := &fakeRenderer{err: errors.New("layout exploded")}
	svc := newTestService(repo, newFakeArchive(), renderer, nil)

	_, err := svc.Save(context.Background(), saveRequest())
	require.ErrorContains(t, err, "layout exploded")

	records, listErr := svc.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, records)
}

func TestSaveArchiveFailureDoesNotLoseRecord(t *testing.T) {
	repo := newFakeSheetRepo()
	archive := newFakeArchive()
	archive.err = errors.New("mongo down")
	svc := newTestService(repo, archive, &fakeRenderer{}, nil)

	rec, err := svc.Save(context.Background(), saveRequest())
	require.NoError(t, err)
	assert.Equal(t, "00001", rec.Number)

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestUpdateStatusNotifiesNewlyAccepted(t *testing.T) {
	repo := newFakeSheetRepo()
	repo.rows[quotationsRange] = [][]interface{}{
		headerRow(),
		quotationRow("00001", "Acme", "10.00", string(models.StatusNegotiating)),
		quotationRow("00002", "Beta", "20.00", string(models.StatusAccepted)),
	}
	notifier := &fakeNotifier{}
	svc := newTestService(repo, newFakeArchive(), &fakeRenderer{}, notifier)

	err := svc.UpdateStatus(context.Background(), map[string]models.Status{
		"00001": models.StatusAccepted,
		"00002": models.StatusAccepted, // already accepted, no repeat announcement
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"00001"}, notifier.accepted)

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusAccepted), records[0].Status)
}
