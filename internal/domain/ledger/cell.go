package ledger

import (
	"strconv"
	"strings"
)

// CoerceQuantity converts a workbook cell into a quantity. Blank and
// non-numeric cells count as zero rather than failing: spreadsheet cells are
// unstructured, and "no transaction for this material on this row" is written
// as a blank at least as often as an explicit 0. Numeric cells keep their
// value; decimal text is truncated to its integer part.
func CoerceQuantity(cell string) int {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0
	}
	if v, err := strconv.Atoi(cell); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return int(f)
	}
	return 0
}

// cellAt returns the cell at the 1-based column, or "" when the row is too
// short. Workbook rows are ragged.
func cellAt(row []string, col int) string {
	if col < 1 || col > len(row) {
		return ""
	}
	return row[col-1]
}
