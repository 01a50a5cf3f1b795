package stocks

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/pretium/internal/common"
	"github.com/ternarybob/pretium/internal/interfaces"
	"github.com/ternarybob/pretium/internal/models"
)

// highCapThreshold is the market cap above which a stock is reported as a
// high market cap holding (100 billion).
var highCapThreshold = decimal.New(100, 9)

// Service scrapes quotes into the raw table and computes analysis over it.
type Service struct {
	symbols       []string
	fetcher       interfaces.QuoteFetcher
	rawStore      interfaces.TableStore
	analyzedStore interfaces.TableStore
	logger        arbor.ILogger
}

// NewService creates a stocks service over the given fetcher and tables.
func NewService(symbols []string, fetcher interfaces.QuoteFetcher, rawStore, analyzedStore interfaces.TableStore, logger arbor.ILogger) *Service {
	if logger == nil {
		logger = common.GetLogger()
	}
	return &Service{
		symbols:       common.NormalizeSymbols(symbols),
		fetcher:       fetcher,
		rawStore:      rawStore,
		analyzedStore: analyzedStore,
		logger:        logger,
	}
}

// Symbols returns the configured collection symbols.
func (s *Service) Symbols() []string {
	return s.symbols
}

// CollectSymbol scrapes one symbol and upserts it into the raw table.
func (s *Service) CollectSymbol(ctx context.Context, symbol string) (*models.StockRecord, error) {
	record, err := s.fetcher.GetQuote(ctx, common.NormalizeSymbol(symbol))
	if err != nil {
		return nil, err
	}

	if err := s.rawStore.Upsert(*record); err != nil {
		return nil, fmt.Errorf("failed to store quote for %s: %w", record.Symbol, err)
	}

	s.logger.Info().
		Str("symbol", record.Symbol).
		Str("stock", record.Stock).
		Msg("Stock data saved")

	return record, nil
}

// Collect scrapes every configured symbol. Individual failures are logged
// and reported in the result; they never abort the run.
func (s *Service) Collect(ctx context.Context) (*models.CollectResult, error) {
	result := &models.CollectResult{
		Requested: len(s.symbols),
	}

	for _, symbol := range s.symbols {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if _, err := s.CollectSymbol(ctx, symbol); err != nil {
			s.logger.Warn().
				Str("symbol", symbol).
				Err(err).
				Msg("Failed to fetch stock data")
			result.Failed = append(result.Failed, symbol)
			continue
		}
		result.Collected++
	}

	s.logger.Info().
		Int("requested", result.Requested).
		Int("collected", result.Collected).
		Int("failed", len(result.Failed)).
		Msg("Collection run complete")

	return result, nil
}

// analyzedRow carries one record with its parsed numeric fields.
type analyzedRow struct {
	record models.StockRecord
	price  models.Numeric
	prev   models.Numeric
	volume models.Numeric
	cap    models.Numeric
}

// Analyze computes derived fields and aggregates over the raw table. An
// empty symbol analyzes the full dataset; otherwise only the matching row
// (case-insensitive) is analyzed. Derived rows are upserted into the
// analyzed table as a side effect.
func (s *Service) Analyze(ctx context.Context, symbol string) (*models.AnalysisResult, error) {
	records, err := s.rawStore.Load()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &EmptyDatasetError{Path: s.rawStore.Path()}
		}
		return nil, err
	}
	if len(records) == 0 {
		return nil, &EmptyDatasetError{Path: s.rawStore.Path()}
	}

	rows := make([]analyzedRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, analyzedRow{
			record: record,
			price:  models.ParseNumeric(record.CurrentPrice),
			prev:   models.ParseNumeric(record.PreviousClose),
			volume: models.ParseNumeric(record.Volume),
			cap:    models.ParseMarketCap(record.MarketCap),
		})
	}

	if symbol != "" {
		filtered := rows[:0]
		for _, row := range rows {
			if strings.EqualFold(row.record.Symbol, symbol) {
				filtered = append(filtered, row)
			}
		}
		if len(filtered) == 0 {
			return nil, &NotFoundError{Symbol: symbol}
		}
		rows = filtered
	}

	avgPrice := mean(rows, func(r analyzedRow) models.Numeric { return r.price })
	avgPrev := mean(rows, func(r analyzedRow) models.Numeric { return r.prev })

	highestName, highestVolume, err := highestVolumeStock(rows)
	if err != nil {
		return nil, err
	}

	s.logHighCapStocks(rows)

	views := make([]models.StockView, 0, len(rows))
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		change := models.PercentageChange(row.price, row.prev)
		trend := models.TrendFor(change)

		derived := models.StockRecord{
			Stock:         row.record.Stock,
			Symbol:        row.record.Symbol,
			CurrentPrice:  row.price.String(),
			PreviousClose: row.prev.String(),
			MarketCap:     row.cap.String(),
			Volume:        row.volume.String(),
			PercentChange: change.String(),
			Trend:         string(trend),
		}
		if err := s.analyzedStore.Upsert(derived); err != nil {
			return nil, fmt.Errorf("failed to store analyzed row for %s: %w", derived.Symbol, err)
		}

		views = append(views, models.StockView{
			StockName:        row.record.Stock,
			StockSymbol:      row.record.Symbol,
			CurrentPrice:     row.price,
			PreviousClose:    row.prev,
			MarketCap:        models.FormatMarketCap(row.cap),
			TradeVolume:      row.volume,
			PercentageChange: change,
			StockTrend:       string(trend),
		})
	}

	return &models.AnalysisResult{
		Stocks:               views,
		AverageCurrentPrice:  avgPrice.Round(2),
		AveragePreviousClose: avgPrev.Round(2),
		HighestVolumeStock:   fmt.Sprintf("%s, %s", highestName, humanize.Comma(highestVolume)),
	}, nil
}

// mean averages the present values of one numeric field. A column with no
// present values yields a missing result rather than zero.
func mean(rows []analyzedRow, field func(analyzedRow) models.Numeric) models.Numeric {
	sum := decimal.Zero
	count := int64(0)
	for _, row := range rows {
		if n := field(row); n.Valid {
			sum = sum.Add(n.Decimal)
			count++
		}
	}
	if count == 0 {
		return models.Numeric{}
	}
	return models.NumericFrom(sum.Div(decimal.NewFromInt(count)))
}

// highestVolumeStock finds the first row with the strictly greatest volume.
// Rows with missing volume never win; a dataset with no parseable volume at
// all is an error rather than an arbitrary pick.
func highestVolumeStock(rows []analyzedRow) (string, int64, error) {
	var (
		bestName string
		bestVol  decimal.Decimal
		found    bool
	)
	for _, row := range rows {
		if !row.volume.Valid {
			continue
		}
		if !found || row.volume.Decimal.GreaterThan(bestVol) {
			bestName = row.record.Stock
			bestVol = row.volume.Decimal
			found = true
		}
	}
	if !found {
		return "", 0, ErrNoVolumeData
	}
	return bestName, bestVol.IntPart(), nil
}

func (s *Service) logHighCapStocks(rows []analyzedRow) {
	symbols := []string{}
	for _, row := range rows {
		if row.cap.Valid && row.cap.Decimal.GreaterThan(highCapThreshold) {
			symbols = append(symbols, row.record.Symbol)
		}
	}
	if len(symbols) > 0 {
		s.logger.Info().
			Strs("symbols", symbols).
			Msg("High market cap stocks (above 100B)")
	}
}
