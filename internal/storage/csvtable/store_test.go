package csvtable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/pretium/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stocks.csv")
	return New(path, models.RawColumns, nil)
}

func record(symbol string) models.StockRecord {
	return models.StockRecord{
		Stock:         symbol + " Inc.",
		Symbol:        symbol,
		CurrentPrice:  "189.84",
		PreviousClose: "188.32",
		MarketCap:     "2.95T",
		Volume:        "75,481,220",
	}
}

func TestUpsertCreatesTable(t *testing.T) {
	store := newTestStore(t)
	assert.False(t, store.Exists())

	require.NoError(t, store.Upsert(record("AAPL")))
	assert.True(t, store.Exists())

	records, err := store.Load()
	require.NoError(t, err)
	require.Len(t, records, 1)

	// Insert path keeps the scraped text verbatim, separators included.
	assert.Equal(t, "AAPL", records[0].Symbol)
	assert.Equal(t, "75,481,220", records[0].Volume)
}

func TestUpsertOverwritesMatchingSymbol(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Upsert(record("AAPL")))

	updated := record("AAPL")
	updated.CurrentPrice = "1,201.50"
	updated.Volume = "80,000,000"
	require.NoError(t, store.Upsert(updated))

	records, err := store.Load()
	require.NoError(t, err)
	require.Len(t, records, 1)

	// Overwrite path canonicalizes the numeric fields.
	assert.Equal(t, "1201.5", records[0].CurrentPrice)
	assert.Equal(t, "80000000", records[0].Volume)
	assert.Equal(t, "2.95T", records[0].MarketCap)
}

func TestUpsertAppendsNewSymbol(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Upsert(record("AAPL")))
	require.NoError(t, store.Upsert(record("MSFT")))

	records, err := store.Load()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "AAPL", records[0].Symbol)
	assert.Equal(t, "MSFT", records[1].Symbol)
}

func TestUpsertSymbolMatchIsCaseSensitive(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Upsert(record("AAPL")))
	require.NoError(t, store.Upsert(record("aapl")))

	records, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestUpsertIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	rec := record("AAPL")

	require.NoError(t, store.Upsert(rec))
	require.NoError(t, store.Upsert(rec))
	after2, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	require.NoError(t, store.Upsert(rec))
	after3, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	records, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, string(after2), string(after3))
}

func TestUpsertRejectsTableWithoutSymbolColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Price\nApple,189.84\n"), 0o644))

	store := New(path, models.RawColumns, nil)
	err := store.Upsert(record("AAPL"))

	var malformed *MalformedTableError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, path, malformed.Path)
}

func TestUpsertTreatsEmptyFileAsNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	store := New(path, models.RawColumns, nil)
	require.NoError(t, store.Upsert(record("AAPL")))

	records, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLoadMissingTable(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Load()
	assert.True(t, os.IsNotExist(err))
}

func TestLoadKeepsUnknownColumnsHarmless(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.csv")
	content := "Symbol,Current Price,Analyst Rating\nAAPL,189.84,Buy\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store := New(path, models.RawColumns, nil)
	records, err := store.Load()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "AAPL", records[0].Symbol)
	assert.Equal(t, "189.84", records[0].CurrentPrice)
}
