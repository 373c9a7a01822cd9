package shared

import "context"

// TableStore is the persistence boundary for all tabular data. The backing
// store is a spreadsheet workbook, so cells are untyped strings and rows and
// columns are addressed 1-based, spreadsheet style. Implementations are not
// transactional; callers must not assume isolation across operations.
type TableStore interface {
	// ReadTable returns every row of the named table, including the header
	// row. Rows may be ragged: trailing blank cells are not padded.
	ReadTable(ctx context.Context, table string) ([][]string, error)

	// ReadRow returns a single row. A row index past the end of the table
	// returns an empty slice, not an error.
	ReadRow(ctx context.Context, table string, row int) ([]string, error)

	// AppendRow appends values as a new row after the last non-empty row.
	AppendRow(ctx context.Context, table string, values []string) error

	// WriteRange writes a rectangular block of values with its top-left cell
	// at (row, col), overwriting existing cells.
	WriteRange(ctx context.Context, table string, row, col int, values [][]string) error

	// InsertColumns inserts count empty columns before col, shifting existing
	// columns right. Cell contents move with their columns.
	InsertColumns(ctx context.Context, table string, col, count int) error
}
