package csvtable

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/pretium/internal/common"
	"github.com/ternarybob/pretium/internal/models"
)

// MalformedTableError reports an existing table whose header lacks the
// symbol key column, which makes upserts impossible.
type MalformedTableError struct {
	Path string
}

func (e *MalformedTableError) Error() string {
	return fmt.Sprintf("table %s has no %q column", e.Path, models.ColSymbol)
}

// pathLocks serializes access per table file so concurrent upserts against
// the same path take turns instead of racing the read-modify-write cycle.
var pathLocks sync.Map

func lockFor(path string) *sync.Mutex {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	mu, _ := pathLocks.LoadOrStore(abs, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Store reads and upserts one CSV quote table. The columns given at
// construction are only used when the table is first created; an existing
// file keeps its own header.
type Store struct {
	path    string
	columns []string
	logger  arbor.ILogger
}

// New creates a store over the table at path with the given creation schema.
func New(path string, columns []string, logger arbor.ILogger) *Store {
	if logger == nil {
		logger = common.GetLogger()
	}
	return &Store{
		path:    path,
		columns: columns,
		logger:  logger,
	}
}

// Path returns the location of the backing table.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the table file has been created.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Load reads the entire table. A missing file surfaces as os.ErrNotExist.
func (s *Store) Load() ([]models.StockRecord, error) {
	mu := lockFor(s.path)
	mu.Lock()
	defer mu.Unlock()

	_, records, err := s.read()
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Upsert inserts the record, or overwrites the row whose symbol matches
// exactly. Overwrites canonicalize the numeric text fields; inserts keep the
// record verbatim. The whole table is rewritten on every call.
func (s *Store) Upsert(record models.StockRecord) error {
	mu := lockFor(s.path)
	mu.Lock()
	defer mu.Unlock()

	header, records, err := s.read()
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug().Str("symbol", record.Symbol).Str("path", s.path).Msg("Creating table")
			return s.write(s.columns, []models.StockRecord{record})
		}
		return err
	}

	if len(header) == 0 {
		// File exists but is empty; treat it as never created.
		return s.write(s.columns, []models.StockRecord{record})
	}
	if !contains(header, models.ColSymbol) {
		return &MalformedTableError{Path: s.path}
	}

	updated := false
	for i := range records {
		if records[i].Symbol == record.Symbol {
			records[i] = canonicalize(record)
			updated = true
			break
		}
	}
	if updated {
		s.logger.Debug().Str("symbol", record.Symbol).Str("path", s.path).Msg("Updated stock row")
	} else {
		records = append(records, record)
		s.logger.Debug().Str("symbol", record.Symbol).Str("path", s.path).Msg("Appended stock row")
	}

	return s.write(header, records)
}

// canonicalize rewrites the numeric text fields to their parsed form,
// dropping thousands separators. Values that do not parse (the "Not Found"
// sentinel among them) pass through and surface as missing at analysis time.
func canonicalize(record models.StockRecord) models.StockRecord {
	if n := models.ParseNumeric(record.CurrentPrice); n.Valid {
		record.CurrentPrice = n.String()
	}
	if n := models.ParseNumeric(record.PreviousClose); n.Valid {
		record.PreviousClose = n.String()
	}
	if n := models.ParseNumeric(record.Volume); n.Valid {
		record.Volume = n.String()
	}
	return record
}

func (s *Store) read() ([]string, []models.StockRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse table %s: %w", s.path, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	header := rows[0]
	records := make([]models.StockRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var record models.StockRecord
		for i, column := range header {
			if i < len(row) {
				record.SetValue(column, row[i])
			}
		}
		records = append(records, record)
	}
	return header, records, nil
}

// write replaces the table atomically via a temp file in the same directory.
func (s *Store) write(header []string, records []models.StockRecord) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create table directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".pretium-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp table: %w", err)
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	if err := writer.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write table header: %w", err)
	}
	row := make([]string, len(header))
	for _, record := range records {
		for i, column := range header {
			row[i] = record.Value(column)
		}
		if err := writer.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write table row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp table: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace table %s: %w", s.path, err)
	}
	return nil
}

func contains(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
