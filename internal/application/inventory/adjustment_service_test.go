package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetstock/backend/internal/domain/catalog"
	"github.com/sheetstock/backend/internal/domain/shared"
	"github.com/sheetstock/backend/internal/infrastructure/persistence/memory"
)

func newAdjustmentFixture(t *testing.T) (*memory.TableStore, *AdjustmentService) {
	t.Helper()
	store := memory.NewTableStore()
	store.Seed("Materials", [][]string{
		{"Material ID", "Material Name"},
		{"M1", "Steel Rod"},
		{"M2", "Copper Wire"},
	})
	svc := NewAdjustmentService(store, catalog.NewLoader(store, "Materials"), "Adjustments")
	svc.now = func() time.Time { return time.Date(2024, time.June, 15, 9, 30, 0, 0, time.UTC) }
	return store, svc
}

func TestAdjustmentRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("writes an absolute snapshot including zeros", func(t *testing.T) {
		store, svc := newAdjustmentFixture(t)

		resp, err := svc.Record(ctx, CreateAdjustmentRequest{
			Note:       "June stocktake",
			Quantities: map[string]int{"M1": 12},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AdjustmentID)
		assert.Equal(t, "2024-06-15T09:30:00Z", resp.CreatedAt)
		assert.Equal(t, 12, resp.Quantities["M1"])
		assert.Equal(t, 0, resp.Quantities["M2"])

		rows := store.Snapshot("Adjustments")
		require.Len(t, rows, 2)
		assert.Equal(t, "12", rows[1][3])
		assert.Equal(t, "0", rows[1][4], "omitted materials are written as zero")
	})

	t.Run("rejects unknown materials and negative counts", func(t *testing.T) {
		_, svc := newAdjustmentFixture(t)

		_, err := svc.Record(ctx, CreateAdjustmentRequest{Quantities: map[string]int{"M9": 1}})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		_, err = svc.Record(ctx, CreateAdjustmentRequest{Quantities: map[string]int{"M1": -1}})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestAdjustmentLatest(t *testing.T) {
	ctx := context.Background()
	_, svc := newAdjustmentFixture(t)

	latest, err := svc.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest, "no stocktake yet")

	_, err = svc.Record(ctx, CreateAdjustmentRequest{Quantities: map[string]int{"M1": 5}})
	require.NoError(t, err)
	second, err := svc.Record(ctx, CreateAdjustmentRequest{Quantities: map[string]int{"M1": 8}})
	require.NoError(t, err)

	latest, err = svc.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.AdjustmentID, latest.AdjustmentID)
	assert.Equal(t, 8, latest.Quantities["M1"], "newest snapshot wins")

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
