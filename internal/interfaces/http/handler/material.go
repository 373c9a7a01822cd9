package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/sheetstock/backend/internal/application/catalog"
	"github.com/sheetstock/backend/internal/interfaces/http/dto"
)

// MaterialHandler exposes the material catalog endpoints.
type MaterialHandler struct {
	BaseHandler
	materialService *catalogapp.MaterialService
}

// NewMaterialHandler creates a MaterialHandler.
func NewMaterialHandler(materialService *catalogapp.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialService: materialService}
}

// RegisterRoutes registers the material routes.
func (h *MaterialHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/materials")
	group.GET("", h.List)
	group.POST("", h.Register)
}

// Register adds a material to the catalog and grows every ledger's columns.
func (h *MaterialHandler) Register(c *gin.Context) {
	var req catalogapp.RegisterMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}
	material, err := h.materialService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, material)
}

// List returns the catalog in row order.
func (h *MaterialHandler) List(c *gin.Context) {
	materials, err := h.materialService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, materials, len(materials))
}
