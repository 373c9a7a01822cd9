// Package inventory records manual stock adjustments. An adjustment row is an
// absolute snapshot of counted stock, not a delta; the newest row wins.
package inventory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sheetstock/backend/internal/domain/catalog"
	"github.com/sheetstock/backend/internal/domain/ledger"
	"github.com/sheetstock/backend/internal/domain/shared"
)

// CreateAdjustmentRequest records one manual stocktake.
type CreateAdjustmentRequest struct {
	Note       string         `json:"note"`
	Quantities map[string]int `json:"quantities" binding:"required"`
}

// AdjustmentResponse is a recorded stocktake row.
type AdjustmentResponse struct {
	AdjustmentID string         `json:"adjustment_id"`
	Note         string         `json:"note"`
	CreatedAt    string         `json:"created_at"`
	Quantities   map[string]int `json:"quantities"`
}

// AdjustmentService appends stocktake rows to the adjustments ledger.
type AdjustmentService struct {
	store      shared.TableStore
	loader     *catalog.Loader
	reconciler *ledger.Reconciler
	layout     ledger.Layout
	now        func() time.Time
}

func NewAdjustmentService(store shared.TableStore, loader *catalog.Loader, table string) *AdjustmentService {
	return &AdjustmentService{
		store:      store,
		loader:     loader,
		reconciler: ledger.NewReconciler(store),
		layout:     ledger.AdjustmentLayout(table),
		now:        time.Now,
	}
}

// Record appends an absolute stock snapshot. Materials omitted from the
// request are written as zero; a snapshot overrides everything before it.
func (s *AdjustmentService) Record(ctx context.Context, req CreateAdjustmentRequest) (*AdjustmentResponse, error) {
	materials, known, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	for id, qty := range req.Quantities {
		if _, ok := known[id]; !ok {
			return nil, fmt.Errorf("%w: unknown material %s", shared.ErrInvalidInput, id)
		}
		if qty < 0 {
			return nil, fmt.Errorf("%w: negative quantity for material %s", shared.ErrInvalidInput, id)
		}
	}

	ids := make([]string, len(materials))
	for i, m := range materials {
		ids[i] = m.ID
	}
	if err := s.reconciler.EnsureMaterialColumns(ctx, s.layout, ids); err != nil {
		return nil, fmt.Errorf("reconcile columns: %w", err)
	}
	rows, err := s.store.ReadTable(ctx, s.layout.Table)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.layout.Table, err)
	}
	headers := ledger.MaterialHeaders(rows, s.layout.MaterialOffset)

	adjustmentID := uuid.New().String()
	createdAt := s.now().Format(time.RFC3339)
	row := make([]string, s.layout.MaterialOffset-1+len(headers))
	row[ledger.ColAdjustmentID-1] = adjustmentID
	row[ledger.ColAdjustmentNote-1] = req.Note
	row[ledger.ColAdjustmentCreatedAt-1] = createdAt
	for i, id := range headers {
		// Absolute snapshot: zero is written out so the row reads complete.
		row[s.layout.MaterialOffset-1+i] = strconv.Itoa(req.Quantities[id])
	}
	if err := s.store.AppendRow(ctx, s.layout.Table, row); err != nil {
		return nil, fmt.Errorf("append adjustment: %w", err)
	}
	return s.toResponse(row, headers), nil
}

func cellAt(row []string, col int) string {
	if col <= len(row) {
		return strings.TrimSpace(row[col-1])
	}
	return ""
}

// List returns every recorded stocktake in ledger order.
func (s *AdjustmentService) List(ctx context.Context) ([]AdjustmentResponse, error) {
	rows, err := s.store.ReadTable(ctx, s.layout.Table)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.layout.Table, err)
	}
	headers := ledger.MaterialHeaders(rows, s.layout.MaterialOffset)
	out := make([]AdjustmentResponse, 0, max(len(rows)-1, 0))
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) == 0 || strings.TrimSpace(rows[i][0]) == "" {
			continue
		}
		out = append(out, *s.toResponse(rows[i], headers))
	}
	return out, nil
}

// Latest returns the effective snapshot, the newest recorded row, or nil when
// no stocktake has been taken yet.
func (s *AdjustmentService) Latest(ctx context.Context) (*AdjustmentResponse, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return &all[len(all)-1], nil
}

func (s *AdjustmentService) toResponse(row []string, headers []string) *AdjustmentResponse {
	quantities := make(map[string]int, len(headers))
	for i, id := range headers {
		if id == "" {
			continue
		}
		quantities[id] = ledger.CoerceQuantity(cellAt(row, s.layout.MaterialOffset+i))
	}
	return &AdjustmentResponse{
		AdjustmentID: cellAt(row, ledger.ColAdjustmentID),
		Note:         cellAt(row, ledger.ColAdjustmentNote),
		CreatedAt:    cellAt(row, ledger.ColAdjustmentCreatedAt),
		Quantities:   quantities,
	}
}
