package ledger

import (
	"context"
	"fmt"

	"github.com/sheetstock/backend/internal/domain/shared"
)

// Reconciler grows ledger material columns to match the catalog. Existing
// columns are never moved or removed; new materials are appended after the
// current last column of their block, in catalog order. Running it twice with
// an unchanged catalog performs no writes.
type Reconciler struct {
	store shared.TableStore
}

// NewReconciler creates a reconciler over the given store.
func NewReconciler(store shared.TableStore) *Reconciler {
	return &Reconciler{store: store}
}

// EnsureMaterialColumns makes every catalog ID present in the ledger's
// material header block. For the two-block sales layout both blocks are grown
// together: the ordered block gains its columns in place (a physical column
// insert before the dispatched block, so existing dispatched cells keep their
// column), and the dispatched block gains the same IDs at the sheet's end,
// keeping the blocks equal length and identically ordered.
func (r *Reconciler) EnsureMaterialColumns(ctx context.Context, layout Layout, catalogIDs []string) error {
	rows, err := r.store.ReadTable(ctx, layout.Table)
	if err != nil {
		return fmt.Errorf("read ledger %q: %w", layout.Table, err)
	}
	headers := MaterialHeaders(rows, layout.MaterialOffset)

	if !layout.TwoBlock {
		missing := missingIDs(headers, catalogIDs)
		if len(missing) == 0 {
			return nil
		}
		col := layout.MaterialOffset + len(headers)
		if err := r.store.WriteRange(ctx, layout.Table, 1, col, [][]string{missing}); err != nil {
			return fmt.Errorf("extend ledger %q columns: %w", layout.Table, err)
		}
		return nil
	}

	n := (len(headers) + 1) / 2
	ordered := headers[:n]
	dispatched := headers[n:]

	missing := missingIDs(ordered, catalogIDs)
	if len(missing) == 0 && len(ordered) == len(dispatched) {
		return nil
	}

	newOrdered := append(append([]string{}, ordered...), missing...)
	newDispatched := append(append([]string{}, dispatched...), missingIDs(dispatched, newOrdered)...)

	if len(missing) > 0 && len(dispatched) > 0 {
		// Open room for the ordered block's new columns so dispatched data
		// cells keep their material.
		at := layout.MaterialOffset + len(ordered)
		if err := r.store.InsertColumns(ctx, layout.Table, at, len(missing)); err != nil {
			return fmt.Errorf("extend ledger %q columns: %w", layout.Table, err)
		}
	}

	header := append(append([]string{}, newOrdered...), newDispatched...)
	if err := r.store.WriteRange(ctx, layout.Table, 1, layout.MaterialOffset, [][]string{header}); err != nil {
		return fmt.Errorf("extend ledger %q columns: %w", layout.Table, err)
	}
	return nil
}

// missingIDs returns the wanted IDs absent from existing, preserving wanted
// order. Blank headers never count as existing.
func missingIDs(existing, wanted []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, id := range existing {
		if id != "" {
			seen[id] = true
		}
	}
	var missing []string
	for _, id := range wanted {
		if id != "" && !seen[id] {
			missing = append(missing, id)
			seen[id] = true
		}
	}
	return missing
}
