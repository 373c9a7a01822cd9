package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	inventoryapp "github.com/sheetstock/backend/internal/application/inventory"
	"github.com/sheetstock/backend/internal/interfaces/http/dto"
)

// AdjustmentHandler exposes the manual stocktake endpoints.
type AdjustmentHandler struct {
	BaseHandler
	adjustmentService *inventoryapp.AdjustmentService
}

// NewAdjustmentHandler creates an AdjustmentHandler.
func NewAdjustmentHandler(adjustmentService *inventoryapp.AdjustmentService) *AdjustmentHandler {
	return &AdjustmentHandler{adjustmentService: adjustmentService}
}

// RegisterRoutes registers the adjustment routes.
func (h *AdjustmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/adjustments")
	group.POST("", h.Record)
	group.GET("", h.List)
	group.GET("/latest", h.Latest)
}

// Record appends a manual stock snapshot.
func (h *AdjustmentHandler) Record(c *gin.Context) {
	var req inventoryapp.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}
	adjustment, err := h.adjustmentService.Record(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, adjustment)
}

// List returns every recorded stocktake.
func (h *AdjustmentHandler) List(c *gin.Context) {
	adjustments, err := h.adjustmentService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, adjustments, len(adjustments))
}

// Latest returns the effective snapshot, or 404 when none exists.
func (h *AdjustmentHandler) Latest(c *gin.Context) {
	latest, err := h.adjustmentService.Latest(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if latest == nil {
		h.NotFound(c, "no stocktake recorded")
		return
	}
	h.Success(c, latest)
}
