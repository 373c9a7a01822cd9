package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableStore_ReadRow(t *testing.T) {
	ctx := context.Background()
	store := NewTableStore()
	store.Seed("T", [][]string{{"a", "b"}, {"c"}})

	row, err := store.ReadRow(ctx, "T", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, row)

	row, err = store.ReadRow(ctx, "T", 5)
	require.NoError(t, err)
	assert.Empty(t, row)
}

func TestTableStore_WriteRangeGrowsTable(t *testing.T) {
	ctx := context.Background()
	store := NewTableStore()
	store.Seed("T", [][]string{{"h"}})

	err := store.WriteRange(ctx, "T", 3, 2, [][]string{{"x", "y"}})
	require.NoError(t, err)

	rows := store.Snapshot("T")
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"", "x", "y"}, rows[2])
}

func TestTableStore_InsertColumns(t *testing.T) {
	ctx := context.Background()
	store := NewTableStore()
	store.Seed("T", [][]string{
		{"a", "b", "c"},
		{"1"},
	})

	err := store.InsertColumns(ctx, "T", 2, 1)
	require.NoError(t, err)

	rows := store.Snapshot("T")
	assert.Equal(t, []string{"a", "", "b", "c"}, rows[0])
	// Row too short to reach the insertion point stays as-is.
	assert.Equal(t, []string{"1"}, rows[1])
}

func TestTableStore_FailureInjection(t *testing.T) {
	ctx := context.Background()
	store := NewTableStore()
	store.FailWrites("T", assert.AnError)

	err := store.AppendRow(ctx, "T", []string{"x"})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, store.WriteCount())
}
