package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sheetstock/backend/internal/application/notification"
	"github.com/sheetstock/backend/internal/domain/catalog"
	"github.com/sheetstock/backend/internal/domain/ledger"
	"github.com/sheetstock/backend/internal/domain/shared"
	"github.com/sheetstock/backend/internal/domain/shared/valueobject"
)

// PurchaseOrderService records and amends rows of the purchase ledger.
type PurchaseOrderService struct {
	store      shared.TableStore
	loader     *catalog.Loader
	reconciler *ledger.Reconciler
	layout     ledger.Layout
	notifier   *notification.Service
}

func NewPurchaseOrderService(store shared.TableStore, loader *catalog.Loader, table string, notifier *notification.Service) *PurchaseOrderService {
	return &PurchaseOrderService{
		store:      store,
		loader:     loader,
		reconciler: ledger.NewReconciler(store),
		layout:     ledger.PurchaseLayout(table),
		notifier:   notifier,
	}
}

// Submit appends a purchase order row, growing the ledger's material columns
// first so every catalog material has a home.
func (s *PurchaseOrderService) Submit(ctx context.Context, req CreatePurchaseOrderRequest) (*OrderResponse, error) {
	materials, known, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if err := validateQuantities(req.Quantities, known); err != nil {
		return nil, err
	}
	orderDate, err := normalizeDate(req.OrderDate)
	if err != nil {
		return nil, err
	}
	if orderDate == "" {
		orderDate = valueobject.Today().String()
	}
	despatchDate, err := normalizeDate(req.DespatchDate)
	if err != nil {
		return nil, err
	}
	amount, err := normalizeAmount(req.Amount)
	if err != nil {
		return nil, err
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

	orderID := uuid.New().String()
	row := make([]string, s.layout.MaterialOffset-1+len(headers))
	row[ledger.ColOrderID-1] = orderID
	row[ledger.ColCounterparty-1] = req.Supplier
	row[ledger.ColOrderDate-1] = orderDate
	row[ledger.ColLifecycleDate-1] = despatchDate
	row[ledger.ColAmount-1] = amount
	for i, id := range headers {
		row[s.layout.MaterialOffset-1+i] = quantityCell(req.Quantities[id])
	}
	if err := s.store.AppendRow(ctx, s.layout.Table, row); err != nil {
		return nil, fmt.Errorf("append purchase order: %w", err)
	}

	s.notifier.OrderSubmitted(ctx, "Purchase", orderID, req.Supplier)
	return s.toResponse(row, headers), nil
}

// Update amends the despatch date or amount of an existing purchase order.
func (s *PurchaseOrderService) Update(ctx context.Context, orderID string, req UpdatePurchaseOrderRequest) (*OrderResponse, error) {
	rowNum, _, err := findOrderRow(ctx, s.store, s.layout.Table, orderID)
	if err != nil {
		return nil, err
	}
	if req.DespatchDate != nil {
		date, err := normalizeDate(*req.DespatchDate)
		if err != nil {
			return nil, err
		}
		if err := s.writeCell(ctx, rowNum, ledger.ColLifecycleDate, date); err != nil {
			return nil, err
		}
	}
	if req.Amount != nil {
		amount, err := normalizeAmount(*req.Amount)
		if err != nil {
			return nil, err
		}
		if err := s.writeCell(ctx, rowNum, ledger.ColAmount, amount); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, orderID)
}

// AttachDocument stores the object-storage key of an uploaded document on the
// order row.
func (s *PurchaseOrderService) AttachDocument(ctx context.Context, orderID, key string) error {
	rowNum, _, err := findOrderRow(ctx, s.store, s.layout.Table, orderID)
	if err != nil {
		return err
	}
	return s.writeCell(ctx, rowNum, ledger.ColDocument, key)
}

// Get returns a single purchase order by its internal ID.
func (s *PurchaseOrderService) Get(ctx context.Context, orderID string) (*OrderResponse, error) {
	_, row, err := findOrderRow(ctx, s.store, s.layout.Table, orderID)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.ReadTable(ctx, s.layout.Table)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.layout.Table, err)
	}
	return s.toResponse(row, ledger.MaterialHeaders(rows, s.layout.MaterialOffset)), nil
}

// List returns every purchase order in ledger order.
func (s *PurchaseOrderService) List(ctx context.Context) ([]OrderResponse, error) {
	rows, err := s.store.ReadTable(ctx, s.layout.Table)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.layout.Table, err)
	}
	headers := ledger.MaterialHeaders(rows, s.layout.MaterialOffset)
	out := make([]OrderResponse, 0, max(len(rows)-1, 0))
	for i := 1; i < len(rows); i++ {
		if cellAt(rows[i], ledger.ColOrderID) == "" {
			continue
		}
		out = append(out, *s.toResponse(rows[i], headers))
	}
	return out, nil
}

func (s *PurchaseOrderService) writeCell(ctx context.Context, row, col int, value string) error {
	if err := s.store.WriteRange(ctx, s.layout.Table, row, col, [][]string{{value}}); err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}

func (s *PurchaseOrderService) toResponse(row []string, headers []string) *OrderResponse {
	quantities := make(map[string]int, len(headers))
	for i, id := range headers {
		if id == "" {
			continue
		}
		quantities[id] = ledger.CoerceQuantity(cellAt(row, s.layout.MaterialOffset+i))
	}
	return &OrderResponse{
		OrderID:       cellAt(row, ledger.ColOrderID),
		Counterparty:  cellAt(row, ledger.ColCounterparty),
		OrderDate:     cellAt(row, ledger.ColOrderDate),
		LifecycleDate: cellAt(row, ledger.ColLifecycleDate),
		Amount:        cellAt(row, ledger.ColAmount),
		DocumentKey:   cellAt(row, ledger.ColDocument),
		Quantities:    quantities,
	}
}
