package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	stockapp "github.com/sheetstock/backend/internal/application/stock"
	"github.com/sheetstock/backend/internal/domain/stock"
	"github.com/sheetstock/backend/internal/interfaces/http/dto"
)

// StockHandler exposes the stock summary endpoints.
type StockHandler struct {
	BaseHandler
	stockService *stockapp.Service
}

// NewStockHandler creates a StockHandler.
func NewStockHandler(stockService *stockapp.Service) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// RegisterRoutes registers the stock routes.
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/stock")
	group.GET("", h.GetStock)
	group.POST("/refresh", h.Refresh)
}

// GetStock computes the current per-material positions without rewriting the
// summary table.
func (h *StockHandler) GetStock(c *gin.Context) {
	rows, err := h.stockService.GetStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, rows, len(rows))
}

// Refresh recomputes the positions and rewrites the summary table. If only
// the final write fails, the computed rows are still returned in the error
// payload.
func (h *StockHandler) Refresh(c *gin.Context) {
	rows, err := h.stockService.ComputeAndRefreshStock(c.Request.Context())
	if err != nil {
		var aggErr *stock.AggregationError
		if errors.As(err, &aggErr) && aggErr.Code == stock.ErrCodeSinkWrite {
			code := dto.NormalizeErrorCode(aggErr.Code)
			c.JSON(dto.GetHTTPStatus(code), dto.Response{
				Success: false,
				Data:    rows,
				Error: &dto.ErrorInfo{
					Code:      code,
					Message:   aggErr.Error(),
					RequestID: getRequestID(c),
				},
			})
			return
		}
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, rows, len(rows))
}
