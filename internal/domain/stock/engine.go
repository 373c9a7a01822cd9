package stock

import (
	"context"
	"strconv"

	"github.com/sheetstock/backend/internal/domain/catalog"
	"github.com/sheetstock/backend/internal/domain/ledger"
	"github.com/sheetstock/backend/internal/domain/shared"
	"github.com/sheetstock/backend/internal/domain/shared/valueobject"
)

// Tables names the five tables an aggregation run touches.
type Tables struct {
	Catalog     string
	Purchases   string
	Sales       string
	Adjustments string
	Summary     string
}

// Engine recomputes the stock summary from scratch on every run: catalog and
// ledgers in, derived summary block out. There is no incremental state; two
// runs over unchanged ledgers produce identical output and identical sink
// contents.
type Engine struct {
	store  shared.TableStore
	loader *catalog.Loader
	tables Tables
	today  func() valueobject.Date
}

// EngineOption is a functional option for configuring an Engine.
type EngineOption func(*Engine)

// WithToday overrides the clock used for settled/pending categorization.
func WithToday(today func() valueobject.Date) EngineOption {
	return func(e *Engine) {
		e.today = today
	}
}

// NewEngine creates an aggregation engine over the given store and tables.
func NewEngine(store shared.TableStore, tables Tables, opts ...EngineOption) *Engine {
	e := &Engine{
		store:  store,
		loader: catalog.NewLoader(store, tables.Catalog),
		tables: tables,
		today:  valueobject.Today,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ComputeStock reads the catalog, all three ledgers and the starting-balance
// slot and derives one SummaryRow per catalog material, in catalog order. An
// empty catalog is an empty result, not an error. Nothing is written.
func (e *Engine) ComputeStock(ctx context.Context) ([]SummaryRow, error) {
	materials, _, err := e.loader.Load(ctx)
	if err != nil {
		return nil, newCatalogUnavailable(e.tables.Catalog, err)
	}
	if len(materials) == 0 {
		return []SummaryRow{}, nil
	}
	today := e.today()

	purchaseRows, err := e.store.ReadTable(ctx, e.tables.Purchases)
	if err != nil {
		return nil, newLedgerReadFailure(e.tables.Purchases, err)
	}
	purchases := ledger.Accumulate(purchaseRows, ledger.PurchaseLayout(e.tables.Purchases), today)

	salesRows, err := e.store.ReadTable(ctx, e.tables.Sales)
	if err != nil {
		return nil, newLedgerReadFailure(e.tables.Sales, err)
	}
	sales := ledger.AccumulateSales(salesRows, ledger.SalesLayout(e.tables.Sales), today)

	adjustmentRows, err := e.store.ReadTable(ctx, e.tables.Adjustments)
	if err != nil {
		return nil, newLedgerReadFailure(e.tables.Adjustments, err)
	}
	manual := ledger.LatestSnapshot(adjustmentRows, ledger.AdjustmentMaterialOffset)

	start, err := e.readStartingBalances(ctx)
	if err != nil {
		return nil, newLedgerReadFailure(e.tables.Summary, err)
	}

	rows := make([]SummaryRow, 0, len(materials))
	for _, m := range materials {
		row := SummaryRow{
			MaterialID: m.ID,
			Name:       m.Name,
			Start:      start[m.ID],
			Sent:       sales.Ordered.Settled[m.ID],
			Outgoing:   sales.Ordered.Pending[m.ID],
			Received:   purchases.Settled[m.ID],
			Incoming:   purchases.Pending[m.ID],
			Manual:     manual[m.ID],
		}
		row.Net = row.Start + row.Received - row.Sent
		rows = append(rows, row)
	}
	return rows, nil
}

// Refresh computes the summary and rewrites the sink's derived block. On a
// sink write failure the computed rows are still returned together with the
// SINK_WRITE_FAILURE error so the caller can serve the result it asked for;
// prior sink contents are only replaced by the single block write.
func (e *Engine) Refresh(ctx context.Context) ([]SummaryRow, error) {
	rows, err := e.ComputeStock(ctx)
	if err != nil {
		return nil, err
	}
	if err := e.writeSink(ctx, rows); err != nil {
		return rows, newSinkWriteFailure(e.tables.Summary, err)
	}
	return rows, nil
}

// readStartingBalances reads the exogenous opening-stock vector from its
// fixed slot, keyed by the sink's current header row so the vector survives
// catalog reordering. A missing slot means every material starts at zero.
func (e *Engine) readStartingBalances(ctx context.Context) (map[string]int, error) {
	header, err := e.store.ReadRow(ctx, e.tables.Summary, SinkRowID)
	if err != nil {
		return nil, err
	}
	values, err := e.store.ReadRow(ctx, e.tables.Summary, SinkRowStart)
	if err != nil {
		return nil, err
	}
	ids := ledger.MaterialHeaders([][]string{header}, SinkMaterialOffset)
	start := make(map[string]int, len(ids))
	for i, id := range ids {
		if id == "" {
			continue
		}
		col := SinkMaterialOffset + i
		if col <= len(values) {
			start[id] = ledger.CoerceQuantity(values[col-1])
		}
	}
	return start, nil
}

// writeSink replaces the derived block in one write. The block is padded to
// the sink's previous width so columns of materials dropped from the catalog
// are blanked rather than left stale.
func (e *Engine) writeSink(ctx context.Context, rows []SummaryRow) error {
	prevHeader, err := e.store.ReadRow(ctx, e.tables.Summary, SinkRowID)
	if err != nil {
		return err
	}
	width := len(rows)
	if prev := len(prevHeader) - SinkMaterialOffset + 1; prev > width {
		width = prev
	}

	block := make([][]string, SinkRowManual)
	for r := SinkRowID; r <= SinkRowManual; r++ {
		line := make([]string, width+1)
		line[0] = sinkRowLabels[r]
		block[r-1] = line
	}
	for i, row := range rows {
		col := 1 + i
		block[SinkRowID-1][col] = row.MaterialID
		block[SinkRowName-1][col] = row.Name
		block[SinkRowSent-1][col] = strconv.Itoa(row.Sent)
		block[SinkRowOutgoing-1][col] = strconv.Itoa(row.Outgoing)
		block[SinkRowReceived-1][col] = strconv.Itoa(row.Received)
		block[SinkRowIncoming-1][col] = strconv.Itoa(row.Incoming)
		block[SinkRowNet-1][col] = strconv.Itoa(row.Net)
		block[SinkRowManual-1][col] = strconv.Itoa(row.Manual)
	}

	return e.store.WriteRange(ctx, e.tables.Summary, SinkRowID, SinkLabelColumn, block)
}
