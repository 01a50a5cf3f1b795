// Package stocks implements quote collection and analysis over the CSV
// quote tables.
package stocks

import (
	"errors"
	"fmt"
)

// NotFoundError reports an analysis filter that matched no stored row.
type NotFoundError struct {
	Symbol string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("stock with symbol %q not found", e.Symbol)
}

// EmptyDatasetError reports an analysis attempted before any quotes were
// collected.
type EmptyDatasetError struct {
	Path string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("no stock data collected yet (table %s is empty)", e.Path)
}

// ErrNoVolumeData is returned when every row in the dataset is missing a
// parseable volume, which leaves the highest-volume aggregate undefined.
var ErrNoVolumeData = errors.New("no rows with parseable volume data")
