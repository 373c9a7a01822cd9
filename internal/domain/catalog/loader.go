package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/sheetstock/backend/internal/domain/shared"
)

// Catalog column positions (1-based) in the materials table.
const (
	colMaterialID   = 1
	colMaterialName = 2
)

// Loader reads the material catalog from the table store. The row order of
// the catalog is canonical: it fixes the material column order of every
// derived output.
type Loader struct {
	store shared.TableStore
	table string
}

// NewLoader creates a catalog loader for the given table.
func NewLoader(store shared.TableStore, table string) *Loader {
	return &Loader{store: store, table: table}
}

// Table returns the backing table name.
func (l *Loader) Table() string {
	return l.table
}

// Load returns all materials in source order plus an ID-to-name lookup.
// The header row is skipped, rows with a blank ID are skipped, and IDs are
// trimmed. A repeated ID keeps both positions in the ordered slice but the
// last occurrence wins in the lookup map.
func (l *Loader) Load(ctx context.Context) ([]Material, map[string]string, error) {
	rows, err := l.store.ReadTable(ctx, l.table)
	if err != nil {
		return nil, nil, fmt.Errorf("read material catalog %q: %w", l.table, err)
	}

	materials := make([]Material, 0, len(rows))
	names := make(map[string]string, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		id := ""
		if len(row) >= colMaterialID {
			id = strings.TrimSpace(row[colMaterialID-1])
		}
		if id == "" {
			continue
		}
		name := ""
		if len(row) >= colMaterialName {
			name = strings.TrimSpace(row[colMaterialName-1])
		}
		materials = append(materials, Material{ID: id, Name: name})
		names[id] = name
	}
	return materials, names, nil
}
