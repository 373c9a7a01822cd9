package ledger

import (
	"strings"

	"github.com/sheetstock/backend/internal/domain/shared/valueobject"
)

// Accumulation holds per-material quantity sums for one ledger. Settled and
// Pending split Total by lifecycle date: a row whose date has passed (or is
// today) is settled, a row with a future or absent date is pending. The split
// is per row, never per unit: every quantity on a row follows that row's one
// date.
type Accumulation struct {
	Total   map[string]int
	Settled map[string]int
	Pending map[string]int
}

// SalesAccumulation is the two-block sales result: Ordered carries the
// ordered-quantity block with its date split, Dispatched the raw totals of
// the dispatched-quantity block, used only for cross-checking.
type SalesAccumulation struct {
	Ordered    Accumulation
	Dispatched map[string]int
}

// MaterialHeaders extracts the material IDs of a ledger's header row starting
// at offset. Positions are preserved; a blank header stays as "" so column
// indexes keep lining up, and is skipped by every accumulation.
func MaterialHeaders(rows [][]string, offset int) []string {
	if len(rows) == 0 {
		return nil
	}
	header := rows[0]
	if len(header) < offset {
		return nil
	}
	ids := make([]string, len(header)-offset+1)
	for i := range ids {
		ids[i] = strings.TrimSpace(header[offset-1+i])
	}
	return ids
}

// Accumulate sums a single-block dated ledger. The header may lag the
// catalog: only columns present in this ledger contribute, and headers no
// longer in the catalog are still summed (the caller decides what to report).
func Accumulate(rows [][]string, layout Layout, today valueobject.Date) Accumulation {
	headers := MaterialHeaders(rows, layout.MaterialOffset)
	return accumulate(rows, headers, layout.MaterialOffset, layout.DateColumn, today)
}

// AccumulateSales sums the sales ledger's two blocks. When the blocks have
// drifted to unequal lengths the extra columns are treated as part of the
// ordered block, matching how the columns are grown.
func AccumulateSales(rows [][]string, layout Layout, today valueobject.Date) SalesAccumulation {
	headers := MaterialHeaders(rows, layout.MaterialOffset)
	n := (len(headers) + 1) / 2
	ordered := headers[:n]
	dispatched := headers[n:]

	return SalesAccumulation{
		Ordered: accumulate(rows, ordered, layout.MaterialOffset, layout.DateColumn, today),
		Dispatched: accumulate(rows, dispatched, layout.MaterialOffset+n, 0, valueobject.Date{}).
			Total,
	}
}

func accumulate(rows [][]string, headers []string, offset, dateCol int, today valueobject.Date) Accumulation {
	acc := Accumulation{
		Total:   make(map[string]int, len(headers)),
		Settled: make(map[string]int, len(headers)),
		Pending: make(map[string]int, len(headers)),
	}
	for _, id := range headers {
		if id == "" {
			continue
		}
		acc.Total[id] = 0
		acc.Settled[id] = 0
		acc.Pending[id] = 0
	}

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		settled := false
		if dateCol > 0 {
			if d, ok := valueobject.ParseDate(cellAt(row, dateCol)); ok {
				settled = !d.After(today)
			}
		}
		for j, id := range headers {
			if id == "" {
				continue
			}
			qty := CoerceQuantity(cellAt(row, offset+j))
			acc.Total[id] += qty
			if settled {
				acc.Settled[id] += qty
			} else {
				acc.Pending[id] += qty
			}
		}
	}
	return acc
}

// LatestSnapshot reads the manual adjustment ledger: only the most recently
// appended row matters, and its quantities are an absolute override, not a
// delta. An empty ledger returns an empty map.
func LatestSnapshot(rows [][]string, offset int) map[string]int {
	headers := MaterialHeaders(rows, offset)
	snapshot := make(map[string]int, len(headers))
	if len(rows) < 2 {
		return snapshot
	}
	last := rows[len(rows)-1]
	for j, id := range headers {
		if id == "" {
			continue
		}
		snapshot[id] = CoerceQuantity(cellAt(last, offset+j))
	}
	return snapshot
}
