package stock

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sheetstock/backend/internal/application/notification"
	"github.com/sheetstock/backend/internal/domain/stock"
	"github.com/sheetstock/backend/internal/infrastructure/persistence/memory"
)

// recordingMailer captures sent messages.
type recordingMailer struct {
	mu       sync.Mutex
	subjects []string
}

func (m *recordingMailer) Send(_ context.Context, _ []string, subject, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subjects = append(m.subjects, subject)
	return nil
}

func newStockFixture(t *testing.T) (*memory.TableStore, *recordingMailer, *Service) {
	t.Helper()
	store := memory.NewTableStore()
	store.Seed("Materials", [][]string{
		{"Material ID", "Material Name"},
		{"M1", "Steel Rod"},
	})
	store.Seed("Purchases", [][]string{
		{"Order ID", "Supplier", "Order Date", "Despatch Date", "Amount", "Document", "M1"},
		{"p1", "Acme", "2024-01-01", "2024-01-02", "10", "", "10"},
	})
	engine := stock.NewEngine(store, stock.Tables{
		Catalog:     "Materials",
		Purchases:   "Purchases",
		Sales:       "Sales",
		Adjustments: "Adjustments",
		Summary:     "Stock",
	})
	mailer := &recordingMailer{}
	notifier := notification.NewService(mailer, []string{"ops@example.com"}, zap.NewNop())
	return store, mailer, NewService(engine, notifier)
}

func TestComputeAndRefreshStock(t *testing.T) {
	ctx := context.Background()

	t.Run("refresh writes the sink and mails the report", func(t *testing.T) {
		store, mailer, svc := newStockFixture(t)

		rows, err := svc.ComputeAndRefreshStock(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "M1", rows[0].MaterialID)
		assert.Equal(t, 10, rows[0].Received)
		assert.Equal(t, 10, rows[0].Net)

		assert.NotEmpty(t, store.Snapshot("Stock"))
		require.Len(t, mailer.subjects, 1)
		assert.Contains(t, mailer.subjects[0], "Stock summary")
	})

	t.Run("sink write failure still returns the rows, without mail", func(t *testing.T) {
		store, mailer, svc := newStockFixture(t)
		store.FailWrites("Stock", errors.New("disk full"))

		rows, err := svc.ComputeAndRefreshStock(ctx)
		require.Error(t, err)
		aggErr, ok := stock.AsAggregationError(err)
		require.True(t, ok)
		assert.Equal(t, stock.ErrCodeSinkWrite, aggErr.Code)
		require.Len(t, rows, 1, "computed rows accompany the error")
		assert.Empty(t, mailer.subjects)
	})

	t.Run("get computes without writing or mailing", func(t *testing.T) {
		store, mailer, svc := newStockFixture(t)

		rows, err := svc.GetStock(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Empty(t, store.Snapshot("Stock"))
		assert.Empty(t, mailer.subjects)
	})
}
