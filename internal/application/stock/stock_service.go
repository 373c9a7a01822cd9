package stock

import (
	"context"

	"github.com/sheetstock/backend/internal/application/notification"
	"github.com/sheetstock/backend/internal/domain/stock"
)

// Service exposes the stock aggregation engine to the interface layer.
type Service struct {
	engine   *stock.Engine
	notifier *notification.Service
}

// NewService creates a stock service. The notifier may be nil.
func NewService(engine *stock.Engine, notifier *notification.Service) *Service {
	return &Service{engine: engine, notifier: notifier}
}

// ComputeAndRefreshStock recomputes every material's position and rewrites
// the summary sink. When only the sink write fails, the freshly computed
// rows are returned alongside the error so the caller still gets the result
// it asked for. A successful refresh also mails the stock report,
// best-effort.
func (s *Service) ComputeAndRefreshStock(ctx context.Context) ([]StockSummaryResponse, error) {
	rows, err := s.engine.Refresh(ctx)
	if err != nil {
		return toResponses(rows), err
	}
	if s.notifier != nil {
		s.notifier.StockReport(ctx, rows)
	}
	return toResponses(rows), nil
}

// GetStock computes the current positions without touching the sink.
func (s *Service) GetStock(ctx context.Context) ([]StockSummaryResponse, error) {
	rows, err := s.engine.ComputeStock(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(rows), nil
}
