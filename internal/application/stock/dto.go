package stock

import "github.com/sheetstock/backend/internal/domain/stock"

// StockSummaryResponse is the per-material stock position returned by the
// stock endpoints.
type StockSummaryResponse struct {
	MaterialID string `json:"material_id"`
	Name       string `json:"name"`
	Start      int    `json:"start"`
	Sent       int    `json:"sent"`
	Outgoing   int    `json:"outgoing"`
	Received   int    `json:"received"`
	Incoming   int    `json:"incoming"`
	Net        int    `json:"net"`
	Manual     int    `json:"manual"`
}

func toResponses(rows []stock.SummaryRow) []StockSummaryResponse {
	out := make([]StockSummaryResponse, len(rows))
	for i, row := range rows {
		out[i] = StockSummaryResponse{
			MaterialID: row.MaterialID,
			Name:       row.Name,
			Start:      row.Start,
			Sent:       row.Sent,
			Outgoing:   row.Outgoing,
			Received:   row.Received,
			Incoming:   row.Incoming,
			Net:        row.Net,
			Manual:     row.Manual,
		}
	}
	return out
}
