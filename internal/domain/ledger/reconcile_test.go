package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetstock/backend/internal/infrastructure/persistence/memory"
)

func TestReconciler_SingleBlock(t *testing.T) {
	ctx := context.Background()
	layout := PurchaseLayout("Purchases")
	baseHeader := []string{"OrderID", "Supplier", "OrderDate", "DespatchDate", "Amount", "Document"}

	t.Run("appends missing materials at the end in catalog order", func(t *testing.T) {
		store := memory.NewTableStore()
		store.Seed("Purchases", [][]string{append(append([]string{}, baseHeader...), "M2")})

		err := NewReconciler(store).EnsureMaterialColumns(ctx, layout, []string{"M1", "M2", "M3"})

		require.NoError(t, err)
		header := store.Snapshot("Purchases")[0]
		assert.Equal(t, []string{"M2", "M1", "M3"}, header[OrderMaterialOffset-1:])
	})

	t.Run("existing columns and their data keep their position", func(t *testing.T) {
		store := memory.NewTableStore()
		store.Seed("Purchases", [][]string{
			append(append([]string{}, baseHeader...), "M1"),
			{"id", "s", "d1", "d2", "9.99", "", "42"},
		})

		err := NewReconciler(store).EnsureMaterialColumns(ctx, layout, []string{"M1", "M2"})

		require.NoError(t, err)
		rows := store.Snapshot("Purchases")
		assert.Equal(t, "M1", rows[0][OrderMaterialOffset-1])
		assert.Equal(t, "M2", rows[0][OrderMaterialOffset])
		assert.Equal(t, "42", rows[1][OrderMaterialOffset-1])
	})

	t.Run("idempotent when nothing is missing", func(t *testing.T) {
		store := memory.NewTableStore()
		store.Seed("Purchases", [][]string{append(append([]string{}, baseHeader...), "M1", "M2")})
		r := NewReconciler(store)

		require.NoError(t, r.EnsureMaterialColumns(ctx, layout, []string{"M1", "M2"}))
		writes := store.WriteCount()
		require.NoError(t, r.EnsureMaterialColumns(ctx, layout, []string{"M1", "M2"}))

		assert.Equal(t, writes, store.WriteCount())
	})
}

func TestReconciler_SalesTwoBlock(t *testing.T) {
	ctx := context.Background()
	layout := SalesLayout("Sales")
	baseHeader := []string{"OrderID", "Customer", "OrderDate", "AppointmentDate", "Amount", "Document"}

	t.Run("bootstraps both blocks from an empty header", func(t *testing.T) {
		store := memory.NewTableStore()
		store.Seed("Sales", [][]string{append([]string{}, baseHeader...)})

		err := NewReconciler(store).EnsureMaterialColumns(ctx, layout, []string{"M1", "M2"})

		require.NoError(t, err)
		header := store.Snapshot("Sales")[0]
		assert.Equal(t, []string{"M1", "M2", "M1", "M2"}, header[OrderMaterialOffset-1:])
	})

	t.Run("grows both blocks keeping dispatched data under its material", func(t *testing.T) {
		store := memory.NewTableStore()
		store.Seed("Sales", [][]string{
			append(append([]string{}, baseHeader...), "M1", "M1"),
			{"id", "c", "d1", "d2", "5.00", "", "10", "4"},
		})

		err := NewReconciler(store).EnsureMaterialColumns(ctx, layout, []string{"M1", "M2"})

		require.NoError(t, err)
		rows := store.Snapshot("Sales")
		assert.Equal(t, []string{"M1", "M2", "M1", "M2"}, rows[0][OrderMaterialOffset-1:])
		// Ordered quantity stays in place, dispatched quantity shifted with
		// its column.
		assert.Equal(t, "10", rows[1][OrderMaterialOffset-1])
		assert.Equal(t, "4", rows[1][OrderMaterialOffset+1])
	})

	t.Run("idempotent on a consistent two-block header", func(t *testing.T) {
		store := memory.NewTableStore()
		store.Seed("Sales", [][]string{append(append([]string{}, baseHeader...), "M1", "M2", "M1", "M2")})
		r := NewReconciler(store)

		require.NoError(t, r.EnsureMaterialColumns(ctx, layout, []string{"M1", "M2"}))
		writes := store.WriteCount()
		require.NoError(t, r.EnsureMaterialColumns(ctx, layout, []string{"M1", "M2"}))

		assert.Equal(t, writes, store.WriteCount())
	})

	t.Run("repairs unequal blocks", func(t *testing.T) {
		store := memory.NewTableStore()
		store.Seed("Sales", [][]string{append(append([]string{}, baseHeader...), "M1", "M2", "M1")})

		err := NewReconciler(store).EnsureMaterialColumns(ctx, layout, []string{"M1", "M2"})

		require.NoError(t, err)
		header := store.Snapshot("Sales")[0]
		assert.Equal(t, []string{"M1", "M2", "M1", "M2"}, header[OrderMaterialOffset-1:])
	})
}

func TestCoerceQuantity(t *testing.T) {
	cases := map[string]int{
		"":      0,
		"  ":    0,
		"0":     0,
		"12":    12,
		" 12 ":  12,
		"3.0":   3,
		"3.9":   3,
		"-2":    -2,
		"n/a":   0,
		"1,200": 0, // thousands separators are not numbers to the ledger
	}
	for cell, want := range cases {
		assert.Equal(t, want, CoerceQuantity(cell), "cell %q", cell)
	}
}
