// Package ledger holds the transaction-ledger semantics: how quantity columns
// are laid out and grown, how cells are coerced, and how rows accumulate into
// per-material totals.
package ledger

// Layout describes where a ledger keeps its material columns and its
// lifecycle date. Columns are 1-based.
type Layout struct {
	// Table is the backing table name.
	Table string

	// MaterialOffset is the first material-quantity column. Everything before
	// it is fixed fields (IDs, counterparties, dates, amounts).
	MaterialOffset int

	// DateColumn is the lifecycle date used for settled/pending
	// categorization: despatch date for purchases, appointment date for
	// sales. Zero means the ledger carries no lifecycle date.
	DateColumn int

	// TwoBlock marks the sales layout: the material columns are duplicated
	// into an ordered-quantity block followed by a dispatched-quantity block
	// of equal length and identical per-material order.
	TwoBlock bool
}

// Fixed columns shared by the purchase and sales ledgers.
const (
	ColOrderID       = 1 // internal ID, lookup key for updates
	ColCounterparty  = 2 // supplier or customer
	ColOrderDate     = 3
	ColLifecycleDate = 4 // despatch date (purchase) / appointment date (sales)
	ColAmount        = 5
	ColDocument      = 6 // storage key of the uploaded order document

	// OrderMaterialOffset is where material columns start in both order ledgers.
	OrderMaterialOffset = 7
)

// Fixed columns of the manual adjustment ledger.
const (
	ColAdjustmentID        = 1
	ColAdjustmentNote      = 2
	ColAdjustmentCreatedAt = 3

	// AdjustmentMaterialOffset is where material columns start in the
	// adjustment ledger.
	AdjustmentMaterialOffset = 4
)

// PurchaseLayout returns the purchase ledger layout for the given table name.
func PurchaseLayout(table string) Layout {
	return Layout{Table: table, MaterialOffset: OrderMaterialOffset, DateColumn: ColLifecycleDate}
}

// SalesLayout returns the sales ledger layout for the given table name.
func SalesLayout(table string) Layout {
	return Layout{Table: table, MaterialOffset: OrderMaterialOffset, DateColumn: ColLifecycleDate, TwoBlock: true}
}

// AdjustmentLayout returns the manual adjustment ledger layout for the given
// table name.
func AdjustmentLayout(table string) Layout {
	return Layout{Table: table, MaterialOffset: AdjustmentMaterialOffset}
}
