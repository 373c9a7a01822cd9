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

// SalesOrderService records and amends rows of the sales ledger. The ledger
// carries two material column blocks: ordered quantities followed by
// dispatched quantities.
type SalesOrderService struct {
	store      shared.TableStore
	loader     *catalog.Loader
	reconciler *ledger.Reconciler
	layout     ledger.Layout
	notifier   *notification.Service
}

func NewSalesOrderService(store shared.TableStore, loader *catalog.Loader, table string, notifier *notification.Service) *SalesOrderService {
	return &SalesOrderService{
		store:      store,
		loader:     loader,
		reconciler: ledger.NewReconciler(store),
		layout:     ledger.SalesLayout(table),
		notifier:   notifier,
	}
}

// Submit appends a sales order row. Ordered quantities land in the first
// column block; the dispatched block starts blank until the order ships.
func (s *SalesOrderService) Submit(ctx context.Context, req CreateSalesOrderRequest) (*OrderResponse, error) {
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
	appointmentDate, err := normalizeDate(req.AppointmentDate)
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
	headers, ordered, _, err := s.blocks(ctx)
	if err != nil {
		return nil, err
	}

	orderID := uuid.New().String()
	row := make([]string, s.layout.MaterialOffset-1+len(headers))
	row[ledger.ColOrderID-1] = orderID
	row[ledger.ColCounterparty-1] = req.Customer
	row[ledger.ColOrderDate-1] = orderDate
	row[ledger.ColLifecycleDate-1] = appointmentDate
	row[ledger.ColAmount-1] = amount
	for i, id := range ordered {
		row[s.layout.MaterialOffset-1+i] = quantityCell(req.Quantities[id])
	}
	if err := s.store.AppendRow(ctx, s.layout.Table, row); err != nil {
		return nil, fmt.Errorf("append sales order: %w", err)
	}

	s.notifier.OrderSubmitted(ctx, "Sales", orderID, req.Customer)
	return s.toResponse(row, ordered, len(ordered)), nil
}

// Update amends the appointment date, amount, or dispatched quantities of an
// existing sales order.
func (s *SalesOrderService) Update(ctx context.Context, orderID string, req UpdateSalesOrderRequest) (*OrderResponse, error) {
	rowNum, _, err := findOrderRow(ctx, s.store, s.layout.Table, orderID)
	if err != nil {
		return nil, err
	}
	if req.AppointmentDate != nil {
		date, err := normalizeDate(*req.AppointmentDate)
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
	if len(req.Dispatched) > 0 {
		if err := s.writeDispatched(ctx, rowNum, req.Dispatched); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, orderID)
}

// AttachDocument stores the object-storage key of an uploaded document on the
// order row.
func (s *SalesOrderService) AttachDocument(ctx context.Context, orderID, key string) error {
	rowNum, _, err := findOrderRow(ctx, s.store, s.layout.Table, orderID)
	if err != nil {
		return err
	}
	return s.writeCell(ctx, rowNum, ledger.ColDocument, key)
}

// Get returns a single sales order by its internal ID.
func (s *SalesOrderService) Get(ctx context.Context, orderID string) (*OrderResponse, error) {
	_, row, err := findOrderRow(ctx, s.store, s.layout.Table, orderID)
	if err != nil {
		return nil, err
	}
	_, ordered, _, err := s.blocks(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponse(row, ordered, len(ordered)), nil
}

// List returns every sales order in ledger order.
func (s *SalesOrderService) List(ctx context.Context) ([]OrderResponse, error) {
	rows, err := s.store.ReadTable(ctx, s.layout.Table)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.layout.Table, err)
	}
	headers := ledger.MaterialHeaders(rows, s.layout.MaterialOffset)
	ordered := headers[:(len(headers)+1)/2]
	out := make([]OrderResponse, 0, max(len(rows)-1, 0))
	for i := 1; i < len(rows); i++ {
		if cellAt(rows[i], ledger.ColOrderID) == "" {
			continue
		}
		out = append(out, *s.toResponse(rows[i], ordered, len(ordered)))
	}
	return out, nil
}

// writeDispatched fills cells of the dispatched column block. Dispatching a
// material the catalog has dropped from the block is rejected.
func (s *SalesOrderService) writeDispatched(ctx context.Context, rowNum int, dispatched map[string]int) error {
	_, ordered, dispatchedIDs, err := s.blocks(ctx)
	if err != nil {
		return err
	}
	cols := make(map[string]int, len(dispatchedIDs))
	for i, id := range dispatchedIDs {
		if id != "" {
			cols[id] = s.layout.MaterialOffset + len(ordered) + i
		}
	}
	for id, qty := range dispatched {
		col, ok := cols[id]
		if !ok {
			return fmt.Errorf("%w: material %s has no dispatched column", shared.ErrInvalidInput, id)
		}
		if qty < 0 {
			return fmt.Errorf("%w: negative quantity for material %s", shared.ErrInvalidInput, id)
		}
		if err := s.writeCell(ctx, rowNum, col, quantityCell(qty)); err != nil {
			return err
		}
	}
	return nil
}

// blocks reads the material header and splits it into its ordered and
// dispatched halves.
func (s *SalesOrderService) blocks(ctx context.Context) (headers, ordered, dispatched []string, err error) {
	rows, err := s.store.ReadTable(ctx, s.layout.Table)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read %s: %w", s.layout.Table, err)
	}
	headers = ledger.MaterialHeaders(rows, s.layout.MaterialOffset)
	n := (len(headers) + 1) / 2
	return headers, headers[:n], headers[n:], nil
}

func (s *SalesOrderService) writeCell(ctx context.Context, row, col int, value string) error {
	if err := s.store.WriteRange(ctx, s.layout.Table, row, col, [][]string{{value}}); err != nil {
		return fmt.Errorf("update sales order: %w", err)
	}
	return nil
}

func (s *SalesOrderService) toResponse(row []string, ordered []string, orderedLen int) *OrderResponse {
	quantities := make(map[string]int, len(ordered))
	dispatched := make(map[string]int, len(ordered))
	for i, id := range ordered {
		if id == "" {
			continue
		}
		quantities[id] = ledger.CoerceQuantity(cellAt(row, s.layout.MaterialOffset+i))
		dispatched[id] = ledger.CoerceQuantity(cellAt(row, s.layout.MaterialOffset+orderedLen+i))
	}
	return &OrderResponse{
		OrderID:       cellAt(row, ledger.ColOrderID),
		Counterparty:  cellAt(row, ledger.ColCounterparty),
		OrderDate:     cellAt(row, ledger.ColOrderDate),
		LifecycleDate: cellAt(row, ledger.ColLifecycleDate),
		Amount:        cellAt(row, ledger.ColAmount),
		DocumentKey:   cellAt(row, ledger.ColDocument),
		Quantities:    quantities,
		Dispatched:    dispatched,
	}
}
