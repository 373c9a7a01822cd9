// Package xlsx implements the TableStore over an Excel workbook using
// excelize. The workbook file is the system of record: one sheet per table,
// untyped string cells. The store is safe for concurrent use within a single
// process; it provides no isolation against other processes editing the file.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/sheetstock/backend/internal/domain/shared"
)

// Ensure WorkbookStore implements the domain interface
var _ shared.TableStore = (*WorkbookStore)(nil)

// WorkbookStore is a TableStore backed by a single .xlsx file. Every mutation
// is saved to disk before returning, so a crash never loses an acknowledged
// write.
type WorkbookStore struct {
	mu   sync.Mutex
	file *excelize.File
	path string
}

// OpenWorkbook opens the workbook at path, creating it if it does not exist,
// and makes sure a sheet exists for every named table. The excelize default
// sheet is kept only if it is one of the tables.
func OpenWorkbook(path string, tables ...string) (*WorkbookStore, error) {
	var f *excelize.File
	created := false
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		f = excelize.NewFile()
		created = true
	} else if err != nil {
		return nil, fmt.Errorf("stat workbook %q: %w", path, err)
	} else {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open workbook %q: %w", path, err)
		}
	}

	for _, table := range tables {
		if idx, err := f.GetSheetIndex(table); err != nil {
			return nil, fmt.Errorf("inspect workbook %q: %w", path, err)
		} else if idx < 0 {
			if _, err := f.NewSheet(table); err != nil {
				return nil, fmt.Errorf("create sheet %q: %w", table, err)
			}
		}
	}
	if created {
		keep := false
		for _, table := range tables {
			if table == "Sheet1" {
				keep = true
			}
		}
		if !keep && len(tables) > 0 {
			_ = f.DeleteSheet("Sheet1")
		}
		if err := f.SaveAs(path); err != nil {
			return nil, fmt.Errorf("create workbook %q: %w", path, err)
		}
	}

	return &WorkbookStore{file: f, path: path}, nil
}

// Close releases the underlying workbook handle.
func (s *WorkbookStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// ReadTable returns all rows of a sheet. excelize trims trailing blank cells,
// which matches the ragged-row contract of TableStore.
func (s *WorkbookStore) ReadTable(_ context.Context, table string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.file.GetRows(table)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", table, err)
	}
	return rows, nil
}

// ReadRow returns one row, or an empty slice past the end of the sheet.
func (s *WorkbookStore) ReadRow(ctx context.Context, table string, row int) ([]string, error) {
	rows, err := s.ReadTable(ctx, table)
	if err != nil {
		return nil, err
	}
	if row < 1 || row > len(rows) {
		return []string{}, nil
	}
	return rows[row-1], nil
}

// AppendRow writes values on the row after the sheet's last occupied row.
func (s *WorkbookStore) AppendRow(_ context.Context, table string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.file.GetRows(table)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", table, err)
	}
	if err := s.setRow(table, len(rows)+1, 1, values); err != nil {
		return err
	}
	return s.save()
}

// WriteRange writes a block of values with its top-left cell at (row, col).
func (s *WorkbookStore) WriteRange(_ context.Context, table string, row, col int, values [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, line := range values {
		if err := s.setRow(table, row+i, col, line); err != nil {
			return err
		}
	}
	return s.save()
}

// InsertColumns inserts count empty columns before col.
func (s *WorkbookStore) InsertColumns(_ context.Context, table string, col, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return fmt.Errorf("column %d: %w", col, err)
	}
	if err := s.file.InsertCols(table, name, count); err != nil {
		return fmt.Errorf("insert columns in sheet %q: %w", table, err)
	}
	return s.save()
}

func (s *WorkbookStore) setRow(table string, row, col int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell (%d,%d): %w", col, row, err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := s.file.SetSheetRow(table, cell, &cells); err != nil {
		return fmt.Errorf("write sheet %q row %d: %w", table, row, err)
	}
	return nil
}

func (s *WorkbookStore) save() error {
	if err := s.file.Save(); err != nil {
		return fmt.Errorf("save workbook %q: %w", s.path, err)
	}
	return nil
}
