package quotations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrinox/orcamentos/internal/domain/models"
)

// fakeSheetRepo keeps sheet contents in memory, keyed by range.
type fakeSheetRepo struct {
	rows    map[string][][]interface{}
	readErr error
}

func newFakeSheetRepo() *fakeSheetRepo {
	return &fakeSheetRepo{rows: make(map[string][][]interface{})}
}

func (f *fakeSheetRepo) ReadRange(_ context.Context, sheetRange string) ([][]interface{}, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.rows[sheetRange], nil
}

func (f *fakeSheetRepo) AppendRow(_ context.Context, sheetRange string, values []interface{}) error {
	f.rows[sheetRange] = append(f.rows[sheetRange], values)
	return nil
}

func (f *fakeSheetRepo) Overwrite(_ context.Context, sheetRange string, rows [][]interface{}) error {
	f.rows[sheetRange] = rows
	return nil
}

func headerRow() []interface{} {
	header := make([]interface{}, len(quotationColumns))
	for i, col := range quotationColumns {
		header[i] = col
	}
	return header
}

func quotationRow(number, client, total, status string) []interface{} {
	return []interface{}{
		number, "01/06/2026 10:00", client, "11.111.111/0001-11", "15 99999-0000",
		"a@b.com", "Rua X, 1", total, status, "", "", "", "", "[]", "orcamento_" + number + ".pdf",
	}
}

func TestStoreListSynthesizesMissingColumns(t *testing.T) {
	repo := newFakeSheetRepo()
	repo.rows[quotationsRange] = [][]interface{}{
		headerRow(),
		{"00001", "01/06/2026 09:00", "Acme"},
	}

	store := NewStore(repo, nil)
	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "00001", rec.Number)
	assert.Equal(t, "Acme", rec.Client.Name)
	assert.Empty(t, rec.Client.Email)
	assert.Empty(t, rec.Status)
	assert.Empty(t, rec.DocumentName)
	assert.Nil(t, rec.Total)
}

func TestStoreListCoercesTotals(t *testing.T) {
	repo := newFakeSheetRepo()
	repo.rows[quotationsRange] = [][]interface{}{
		headerRow(),
		quotationRow("00001", "Acme", "150.50", string(models.StatusSent)),
		quotationRow("00002", "Beta", "not-a-number", string(models.StatusSent)),
	}

	store := NewStore(repo, nil)
	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.NotNil(t, records[0].Total)
	assert.Equal(t, "150.50", records[0].Total.StringFixed(2))
	assert.Nil(t, records[1].Total)
}

func TestStoreListWithoutHeaderRow(t *testing.T) {
	repo := newFakeSheetRepo()
	repo.rows[quotationsRange] = [][]interface{}{
		quotationRow("00001", "Acme", "10.00", string(models.StatusSent)),
	}

	store := NewStore(repo, nil)
	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "00001", records[0].Number)
}

func TestStoreListPropagatesReadFailure(t *testing.T) {
	repo := newFakeSheetRepo()
	repo.readErr = errors.New("connectivity lost")

	store := NewStore(repo, nil)
	_, err := store.List(context.Background())
	assert.ErrorContains(t, err, "connectivity lost")
}

func TestStoreAppendPopulatesEveryColumn(t *testing.T) {
	repo := newFakeSheetRepo()
	store := NewStore(repo, nil)

	err := store.Append(context.Background(), models.QuotationRecord{
		Number: "00003",
		Client: models.ClientInfo{Name: "Acme"},
		Status: string(models.StatusSent),
	})
	require.NoError(t, err)

	require.Len(t, repo.rows[quotationsRange], 1)
	row := repo.rows[quotationsRange][0]
	require.Len(t, row, len(quotationColumns))

	// Fields not supplied default to the empty string rather than being
	// dropped from the row.
	assert.Equal(t, "00003", row[0])
	assert.Equal(t, "Acme", row[2])
	assert.Equal(t, "", row[7])
	assert.Equal(t, "", row[13])

	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "00003", records[0].Number)
}

func TestStoreUpdateStatus(t *testing.T) {
	repo := newFakeSheetRepo()
	repo.rows[quotationsRange] = [][]interface{}{
		headerRow(),
		quotationRow("00001", "Acme", "10.00", string(models.StatusSent)),
		quotationRow("00002", "Beta", "20.00", string(models.StatusNegotiating)),
	}

	store := NewStore(repo, nil)
	err := store.UpdateStatus(context.Background(), map[string]models.Status{
		"00001": models.StatusAccepted,
		"00099": models.StatusRejected, // absent from the table, must be a no-op
	})
	require.NoError(t, err)

	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, string(models.StatusAccepted), records[0].Status)
	assert.Equal(t, string(models.StatusNegotiating), records[1].Status)

	// The rewrite keeps the header as the first row.
	assert.Equal(t, "Numero", repo.rows[quotationsRange][0][0])
}

func TestStoreDeleteByNumberIsIdempotent(t *testing.T) {
	repo := newFakeSheetRepo()
	repo.rows[quotationsRange] = [][]interface{}{
		headerRow(),
		quotationRow("00001", "Acme", "10.00", string(models.StatusSent)),
		quotationRow("00002", "Beta", "20.00", string(models.StatusSent)),
	}

	store := NewStore(repo, nil)
	require.NoError(t, store.DeleteByNumber(context.Background(), "00001"))

	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "00002", records[0].Number)

	// Deleting again is not an error and changes nothing.
	require.NoError(t, store.DeleteByNumber(context.Background(), "00001"))
	records, err = store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
}
