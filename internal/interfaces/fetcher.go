package interfaces

import (
	"context"

	"github.com/ternarybob/pretium/internal/models"
)

// QuoteFetcher retrieves one symbol's quote fields from an external source.
// Fields that cannot be located carry the "Not Found" sentinel; an unknown
// symbol fails with a not-found error distinct from transport failures.
type QuoteFetcher interface {
	GetQuote(ctx context.Context, symbol string) (*models.StockRecord, error)
}
