package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sheetstock/backend/internal/application/trade"
	"github.com/sheetstock/backend/internal/interfaces/http/dto"
)

// PurchaseOrderHandler exposes the purchase ledger endpoints.
type PurchaseOrderHandler struct {
	BaseHandler
	orderService *trade.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a PurchaseOrderHandler.
func NewPurchaseOrderHandler(orderService *trade.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orderService: orderService}
}

// RegisterRoutes registers the purchase order routes.
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/purchase-orders")
	group.POST("", h.Submit)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.PATCH("/:id", h.Update)
}

// Submit records a new purchase order.
func (h *PurchaseOrderHandler) Submit(c *gin.Context) {
	var req trade.CreatePurchaseOrderRequest
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

// List returns every purchase order.
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, len(orders))
}

// Get returns a single purchase order by ID.
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	order, err := h.orderService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Update amends the despatch date or amount of a purchase order.
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	var req trade.UpdatePurchaseOrderRequest
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
