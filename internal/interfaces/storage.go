package interfaces

import "github.com/ternarybob/pretium/internal/models"

// TableStore is a flat quote table keyed by symbol. Implementations persist
// the whole table on every write; the analysis service depends on this
// interface rather than on a concrete file store.
type TableStore interface {
	// Path returns the location of the backing table, for logs and status.
	Path() string

	// Exists reports whether the table has been created.
	Exists() bool

	// Load reads the entire table. A table that was never created returns an
	// error satisfying errors.Is(err, os.ErrNotExist).
	Load() ([]models.StockRecord, error)

	// Upsert inserts the record or overwrites the row with the same symbol
	// (exact, case-sensitive match), then persists the full table.
	Upsert(record models.StockRecord) error
}
