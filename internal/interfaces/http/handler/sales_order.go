package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sheetstock/backend/internal/application/trade"
	"github.com/sheetstock/backend/internal/interfaces/http/dto"
)

// SalesOrderHandler exposes the sales ledger endpoints.
type SalesOrderHandler struct {
	BaseHandler
	orderService *trade.SalesOrderService
}

// NewSalesOrderHandler creates a SalesOrderHandler.
func NewSalesOrderHandler(orderService *trade.SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{orderService: orderService}
}

// RegisterRoutes registers the sales order routes.
func (h *SalesOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/sales-orders")
	group.POST("", h.Submit)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.PATCH("/:id", h.Update)
}

// Submit records a new sales order.
func (h *SalesOrderHandler) Submit(c *gin.Context) {
	var req trade.CreateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}
	order, err := h.orderService.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// List returns every sales order.
func (h *SalesOrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, len(orders))
}

// Get returns a single sales order by ID.
func (h *SalesOrderHandler) Get(c *gin.Context) {
	order, err := h.orderService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Update amends the appointment date, amount, or dispatched quantities of a
// sales order.
func (h *SalesOrderHandler) Update(c *gin.Context) {
	var req trade.UpdateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}
	order, err := h.orderService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
