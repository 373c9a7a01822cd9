// Package memory provides an in-memory TableStore used by tests and local
// development. It mirrors the cell semantics of the workbook store: string
// cells, 1-based addressing, ragged rows.
package memory

import (
	"context"
	"sync"

	"github.com/sheetstock/backend/internal/domain/shared"
)

// Ensure TableStore implements the domain interface
var _ shared.TableStore = (*TableStore)(nil)

// TableStore keeps tables as slices of string rows guarded by a mutex.
type TableStore struct {
	mu         sync.RWMutex
	tables     map[string][][]string
	readErrs   map[string]error
	writeErrs  map[string]error
	writeCount int
}

// NewTableStore creates an empty in-memory store.
func NewTableStore() *TableStore {
	return &TableStore{
		tables:    make(map[string][][]string),
		readErrs:  make(map[string]error),
		writeErrs: make(map[string]error),
	}
}

// Seed replaces the contents of a table.
func (s *TableStore) Seed(table string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = copyRows(rows)
}

// Snapshot returns a copy of a table for assertions.
func (s *TableStore) Snapshot(table string) [][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRows(s.tables[table])
}

// FailReads makes every read of the given table return err.
func (s *TableStore) FailReads(table string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErrs[table] = err
}

// FailWrites makes every write to the given table return err.
func (s *TableStore) FailWrites(table string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErrs[table] = err
}

// WriteCount returns the number of successful write operations, letting tests
// assert that a failed run performed no writes at all.
func (s *TableStore) WriteCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writeCount
}

// ReadTable returns a copy of all rows in the table.
func (s *TableStore) ReadTable(_ context.Context, table string) ([][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readErrs[table]; err != nil {
		return nil, err
	}
	return copyRows(s.tables[table]), nil
}

// ReadRow returns a copy of one row, or an empty slice past the end.
func (s *TableStore) ReadRow(_ context.Context, table string, row int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readErrs[table]; err != nil {
		return nil, err
	}
	rows := s.tables[table]
	if row < 1 || row > len(rows) {
		return []string{}, nil
	}
	return append([]string(nil), rows[row-1]...), nil
}

// AppendRow appends values as a new row.
func (s *TableStore) AppendRow(_ context.Context, table string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeErrs[table]; err != nil {
		return err
	}
	s.tables[table] = append(s.tables[table], append([]string(nil), values...))
	s.writeCount++
	return nil
}

// WriteRange writes a block of values with its top-left cell at (row, col),
// growing the table as needed.
func (s *TableStore) WriteRange(_ context.Context, table string, row, col int, values [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeErrs[table]; err != nil {
		return err
	}
	rows := s.tables[table]
	for i, vals := range values {
		target := row - 1 + i
		for len(rows) <= target {
			rows = append(rows, []string{})
		}
		line := rows[target]
		for j, v := range vals {
			idx := col - 1 + j
			for len(line) <= idx {
				line = append(line, "")
			}
			line[idx] = v
		}
		rows[target] = line
	}
	s.tables[table] = rows
	s.writeCount++
	return nil
}

// InsertColumns inserts count empty columns before col in every row that
// reaches that position. Shorter rows are unchanged, matching spreadsheet
// behavior where absent trailing cells are already empty.
func (s *TableStore) InsertColumns(_ context.Context, table string, col, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeErrs[table]; err != nil {
		return err
	}
	rows := s.tables[table]
	for i, line := range rows {
		if len(line) < col {
			continue
		}
		inserted := make([]string, 0, len(line)+count)
		inserted = append(inserted, line[:col-1]...)
		for n := 0; n < count; n++ {
			inserted = append(inserted, "")
		}
		inserted = append(inserted, line[col-1:]...)
		rows[i] = inserted
	}
	s.tables[table] = rows
	s.writeCount++
	return nil
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
