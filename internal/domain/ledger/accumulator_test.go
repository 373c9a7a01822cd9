package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetstock/backend/internal/domain/shared/valueobject"
)

var today = valueobject.NewDate(2024, time.June, 15)

// orderRow builds a purchase/sales-shaped row: six fixed cells then material
// quantities.
func orderRow(lifecycleDate string, quantities ...string) []string {
	row := []string{"id", "counterparty", "2024-06-01", lifecycleDate, "100.00", ""}
	return append(row, quantities...)
}

func purchaseRows(dataRows ...[]string) [][]string {
	header := []string{"OrderID", "Supplier", "OrderDate", "DespatchDate", "Amount", "Document", "M1", "M2"}
	return append([][]string{header}, dataRows...)
}

func TestAccumulate_DateCategorization(t *testing.T) {
	layout := PurchaseLayout("Purchases")

	t.Run("past date settles, future date pends", func(t *testing.T) {
		rows := purchaseRows(
			orderRow("2024-06-14", "10", "1"), // yesterday -> settled
			orderRow("2024-06-16", "4", "2"),  // tomorrow -> pending
		)

		acc := Accumulate(rows, layout, today)

		assert.Equal(t, 10, acc.Settled["M1"])
		assert.Equal(t, 4, acc.Pending["M1"])
		assert.Equal(t, 14, acc.Total["M1"])
		assert.Equal(t, 1, acc.Settled["M2"])
		assert.Equal(t, 2, acc.Pending["M2"])
	})

	t.Run("today counts as settled", func(t *testing.T) {
		acc := Accumulate(purchaseRows(orderRow("2024-06-15", "7")), layout, today)

		assert.Equal(t, 7, acc.Settled["M1"])
		assert.Zero(t, acc.Pending["M1"])
	})

	t.Run("absent or unparseable date pends", func(t *testing.T) {
		rows := purchaseRows(
			orderRow("", "3"),
			orderRow("awaiting confirmation", "5"),
		)

		acc := Accumulate(rows, layout, today)

		assert.Zero(t, acc.Settled["M1"])
		assert.Equal(t, 8, acc.Pending["M1"])
	})

	t.Run("whole row follows its one date", func(t *testing.T) {
		acc := Accumulate(purchaseRows(orderRow("2024-06-10", "10", "20")), layout, today)

		assert.Equal(t, 10, acc.Settled["M1"])
		assert.Equal(t, 20, acc.Settled["M2"])
		assert.Zero(t, acc.Pending["M1"])
		assert.Zero(t, acc.Pending["M2"])
	})

	t.Run("settled plus pending equals total", func(t *testing.T) {
		rows := purchaseRows(
			orderRow("2024-06-01", "3", "9"),
			orderRow("", "2", ""),
			orderRow("2024-07-01", "11", "4"),
		)

		acc := Accumulate(rows, layout, today)

		for _, id := range []string{"M1", "M2"} {
			assert.Equal(t, acc.Total[id], acc.Settled[id]+acc.Pending[id], id)
		}
	})
}

func TestAccumulate_CellCoercion(t *testing.T) {
	layout := PurchaseLayout("Purchases")

	t.Run("blank and explicit zero accumulate identically", func(t *testing.T) {
		blank := Accumulate(purchaseRows(orderRow("2024-06-01", "", "5")), layout, today)
		zero := Accumulate(purchaseRows(orderRow("2024-06-01", "0", "5")), layout, today)

		assert.Equal(t, blank.Total, zero.Total)
		assert.Equal(t, blank.Settled, zero.Settled)
		assert.Equal(t, blank.Pending, zero.Pending)
	})

	t.Run("non-numeric cells recover as zero", func(t *testing.T) {
		acc := Accumulate(purchaseRows(orderRow("2024-06-01", "n/a", "2.0")), layout, today)

		assert.Zero(t, acc.Total["M1"])
		assert.Equal(t, 2, acc.Total["M2"])
	})

	t.Run("short rows read as blank cells", func(t *testing.T) {
		rows := purchaseRows([]string{"id", "s", "2024-06-01", "2024-06-01", "50"})

		acc := Accumulate(rows, layout, today)

		assert.Zero(t, acc.Total["M1"])
		assert.Zero(t, acc.Total["M2"])
	})
}

func TestAccumulate_HeaderHandling(t *testing.T) {
	layout := PurchaseLayout("Purchases")

	t.Run("blank header column never contributes", func(t *testing.T) {
		rows := [][]string{
			{"OrderID", "Supplier", "OrderDate", "DespatchDate", "Amount", "Document", "M1", "  ", "M2"},
			orderRow("2024-06-01", "1", "99", "2"),
		}

		acc := Accumulate(rows, layout, today)

		assert.Equal(t, 1, acc.Total["M1"])
		assert.Equal(t, 2, acc.Total["M2"])
		assert.NotContains(t, acc.Total, "")
		assert.NotContains(t, acc.Total, "99")
	})

	t.Run("headers are trimmed", func(t *testing.T) {
		rows := [][]string{
			{"OrderID", "Supplier", "OrderDate", "DespatchDate", "Amount", "Document", " M1 "},
			orderRow("2024-06-01", "6"),
		}

		acc := Accumulate(rows, layout, today)

		assert.Equal(t, 6, acc.Total["M1"])
	})

	t.Run("header absent from catalog still sums", func(t *testing.T) {
		// Discontinued materials keep their historical quantity in the
		// ledger; whether it is reported is the caller's decision.
		acc := Accumulate(purchaseRows(orderRow("2024-06-01", "1", "8")), layout, today)

		assert.Equal(t, 8, acc.Total["M2"])
	})

	t.Run("empty ledger yields empty maps", func(t *testing.T) {
		acc := Accumulate(nil, layout, today)

		assert.Empty(t, acc.Total)
	})
}

func TestAccumulateSales_TwoBlocks(t *testing.T) {
	layout := SalesLayout("Sales")
	header := []string{"OrderID", "Customer", "OrderDate", "AppointmentDate", "Amount", "Document", "M1", "M2", "M1", "M2"}

	t.Run("ordered block drives the date split, dispatched is a plain total", func(t *testing.T) {
		rows := [][]string{
			header,
			orderRow("2024-06-14", "10", "3", "9", "1"), // settled
			orderRow("2024-06-16", "4", "0", "2", ""),   // pending
		}

		acc := AccumulateSales(rows, layout, today)

		assert.Equal(t, 10, acc.Ordered.Settled["M1"])
		assert.Equal(t, 4, acc.Ordered.Pending["M1"])
		assert.Equal(t, 3, acc.Ordered.Settled["M2"])
		assert.Equal(t, 14, acc.Ordered.Total["M1"])

		assert.Equal(t, 11, acc.Dispatched["M1"])
		assert.Equal(t, 1, acc.Dispatched["M2"])
	})

	t.Run("empty sales ledger", func(t *testing.T) {
		acc := AccumulateSales([][]string{header[:6]}, layout, today)

		assert.Empty(t, acc.Ordered.Total)
		assert.Empty(t, acc.Dispatched)
	})
}

func TestLatestSnapshot(t *testing.T) {
	adjRow := func(quantities ...string) []string {
		return append([]string{"adj-id", "note", "2024-06-01T10:00:00Z"}, quantities...)
	}
	header := []string{"AdjustmentID", "Note", "CreatedAt", "M1", "M2"}

	t.Run("only the newest row counts", func(t *testing.T) {
		rows := [][]string{
			header,
			adjRow("100", "50"),
			adjRow("7", ""),
		}

		snap := LatestSnapshot(rows, AdjustmentMaterialOffset)

		assert.Equal(t, 7, snap["M1"])
		assert.Zero(t, snap["M2"]) // absolute override, prior rows ignored
	})

	t.Run("empty ledger yields empty snapshot", func(t *testing.T) {
		require.Empty(t, LatestSnapshot([][]string{header}, AdjustmentMaterialOffset))
		require.Empty(t, LatestSnapshot(nil, AdjustmentMaterialOffset))
	})
}
