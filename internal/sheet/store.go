package sheet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ErrInvalidPosition means a row position falls outside the populated range.
var ErrInvalidPosition = errors.New("row position out of range")

// DataStartRow is the first sheet row holding record data; row 1 is the header.
const DataStartRow = 2

// PositionedRecord pairs a record's field map with the sheet row it
// currently occupies. Positions are only valid until the next Delete.
type PositionedRecord struct {
	Position int
	Fields   map[string]string
}

// Store provides row-addressed CRUD over the listing sheet. The sheet has no
// row-level primitives beyond range reads and writes, so Delete is simulated
// by shifting every following row up and clearing the vacated last row.
//
// The mutex serializes the read-modify-write cycles of a single process.
// Writers in other processes still race with last-writer-wins semantics.
type Store struct {
	api       RangeAPI
	sheetName string
	logger    *zap.Logger
	mu        sync.Mutex
}

func NewStore(api RangeAPI, sheetName string, logger *zap.Logger) *Store {
	return &Store{
		api:       api,
		sheetName: sheetName,
		logger:    logger,
	}
}

// Append writes a new record after the last populated row and returns the
// position it landed on. Missing fields are written as empty cells.
func (s *Store) Append(ctx context.Context, fields map[string]string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.api.Get(ctx, s.dataRange())
	if err != nil {
		return 0, err
	}
	position := DataStartRow + len(rows)

	if err := s.api.Append(ctx, s.dataRange(), FieldsToRow(fields), true); err != nil {
		return 0, err
	}

	s.logger.Debug("Appended record row",
		zap.Int("position", position),
		zap.String("ad_id", fields[FieldAdID]))
	return position, nil
}

// Get returns the field map at the given position.
func (s *Store) Get(ctx context.Context, position int) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.api.Get(ctx, s.dataRange())
	if err != nil {
		return nil, err
	}

	idx, err := dataIndex(position, len(rows))
	if err != nil {
		return nil, err
	}
	return RowToFields(rows[idx]), nil
}

// List returns every populated record with its current position.
func (s *Store) List(ctx context.Context) ([]PositionedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.api.Get(ctx, s.dataRange())
	if err != nil {
		return nil, err
	}

	records := make([]PositionedRecord, 0, len(rows))
	for i, row := range rows {
		records = append(records, PositionedRecord{
			Position: DataStartRow + i,
			Fields:   RowToFields(row),
		})
	}
	return records, nil
}

// ListByEmail returns the records whose owner email matches exactly.
func (s *Store) ListByEmail(ctx context.Context, email string) ([]PositionedRecord, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]PositionedRecord, 0, len(records))
	for _, r := range records {
		if r.Fields[FieldEmail] == email {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// Update merges only the keys present in fields over the stored row and
// writes the merged row back to the same position. Keys that don't name a
// column are ignored; absent fields keep their stored value.
func (s *Store) Update(ctx context.Context, position int, fields map[string]string, entered bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.api.Get(ctx, s.dataRange())
	if err != nil {
		return err
	}

	idx, err := dataIndex(position, len(rows))
	if err != nil {
		return err
	}

	merged := PadRow(rows[idx])
	for name, value := range fields {
		if i, ok := ColumnIndex(name); ok {
			merged[i] = value
		}
	}

	if err := s.api.Update(ctx, s.rowRange(position), [][]string{merged}, entered); err != nil {
		return err
	}

	s.logger.Debug("Updated record row",
		zap.Int("position", position),
		zap.Int("fields", len(fields)))
	return nil
}

// Delete removes the row at position by shifting every following row up one
// position and clearing the vacated last row. Positions held by callers for
// any row at or below the deleted one are stale afterwards.
func (s *Store) Delete(ctx context.Context, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.api.Get(ctx, s.dataRange())
	if err != nil {
		return err
	}

	idx, err := dataIndex(position, len(rows))
	if err != nil {
		return err
	}

	lastPosition := DataStartRow + len(rows) - 1

	if position < lastPosition {
		shifted := make([][]string, 0, len(rows)-idx-1)
		for _, row := range rows[idx+1:] {
			shifted = append(shifted, PadRow(row))
		}
		blockRange := fmt.Sprintf("%s!A%d:AD%d", s.sheetName, position, lastPosition-1)
		if err := s.api.Update(ctx, blockRange, shifted, false); err != nil {
			return err
		}
	}

	if err := s.api.Clear(ctx, s.rowRange(lastPosition)); err != nil {
		return err
	}

	s.logger.Info("Deleted record row",
		zap.Int("position", position),
		zap.Int("rows_shifted", lastPosition-position))
	return nil
}

func (s *Store) dataRange() string {
	return fmt.Sprintf("%s!A%d:AD", s.sheetName, DataStartRow)
}

func (s *Store) rowRange(position int) string {
	return fmt.Sprintf("%s!A%d:AD%d", s.sheetName, position, position)
}

func dataIndex(position, rowCount int) (int, error) {
	idx := position - DataStartRow
	if idx < 0 || idx >= rowCount {
		return 0, fmt.Errorf("%w: row %d (populated rows %d..%d)",
			ErrInvalidPosition, position, DataStartRow, DataStartRow+rowCount-1)
	}
	return idx, nil
}
