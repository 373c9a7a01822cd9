package trade

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sheetstock/backend/internal/domain/ledger"
	"github.com/sheetstock/backend/internal/domain/shared"
	"github.com/sheetstock/backend/internal/domain/shared/valueobject"
)

// validateQuantities rejects negative amounts and materials absent from the
// catalog. Zero quantities are allowed and simply render as blank cells.
func validateQuantities(quantities map[string]int, known map[string]string) error {
	for id, qty := range quantities {
		if qty < 0 {
			return fmt.Errorf("%w: negative quantity for material %s", shared.ErrInvalidInput, id)
		}
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: unknown material %s", shared.ErrInvalidInput, id)
		}
	}
	return nil
}

// normalizeAmount validates a monetary amount and returns its canonical string
// form. Blank input stays blank.
func normalizeAmount(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return "", fmt.Errorf("%w: invalid amount %q", shared.ErrInvalidInput, raw)
	}
	return amount.String(), nil
}

// normalizeDate validates a date field and returns it in canonical form.
// Blank input stays blank, which the stock engine treats as pending.
func normalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	date, ok := valueobject.ParseDate(raw)
	if !ok {
		return "", fmt.Errorf("%w: unrecognized date %q", shared.ErrInvalidInput, raw)
	}
	return date.String(), nil
}

// quantityCell renders a quantity for a ledger cell. Zero writes blank so the
// sheet stays readable; the aggregator treats the two identically.
func quantityCell(qty int) string {
	if qty == 0 {
		return ""
	}
	return strconv.Itoa(qty)
}

// findOrderRow locates a ledger row by its internal order ID and returns the
// 1-based row number together with the row itself.
func findOrderRow(ctx context.Context, store shared.TableStore, table, orderID string) (int, []string, error) {
	rows, err := store.ReadTable(ctx, table)
	if err != nil {
		return 0, nil, fmt.Errorf("read %s: %w", table, err)
	}
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) >= ledger.ColOrderID && strings.TrimSpace(rows[i][ledger.ColOrderID-1]) == orderID {
			return i + 1, rows[i], nil
		}
	}
	return 0, nil, fmt.Errorf("%w: order %s", shared.ErrNotFound, orderID)
}

func cellAt(row []string, col int) string {
	if col <= len(row) {
		return strings.TrimSpace(row[col-1])
	}
	return ""
}
