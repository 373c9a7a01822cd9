package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sheetstock/backend/internal/application/document"
	"github.com/sheetstock/backend/internal/interfaces/http/dto"
)

// DocumentHandler exposes the order document upload and download flow.
type DocumentHandler struct {
	BaseHandler
	documentService *document.Service
}

// NewDocumentHandler creates a DocumentHandler.
func NewDocumentHandler(documentService *document.Service) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// RegisterRoutes registers the document routes. The kind segment selects the
// ledger: "purchase" or "sales".
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/orders/:kind/:id/document")
	group.POST("", h.InitiateUpload)
	group.POST("/confirm", h.ConfirmUpload)
	group.GET("", h.Download)
}

// InitiateUpload returns a presigned upload URL for an order document.
func (h *DocumentHandler) InitiateUpload(c *gin.Context) {
	var req document.InitiateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}
	resp, err := h.documentService.InitiateUpload(c.Request.Context(), c.Param("kind"), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

type confirmUploadRequest struct {
	StorageKey string `json:"storage_key" binding:"required"`
}

// ConfirmUpload verifies the upload and records the key on the order row.
func (h *DocumentHandler) ConfirmUpload(c *gin.Context) {
	var req confirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}
	if err := h.documentService.ConfirmUpload(c.Request.Context(), c.Param("kind"), c.Param("id"), req.StorageKey); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Download returns a presigned download URL for the order's document.
func (h *DocumentHandler) Download(c *gin.Context) {
	resp, err := h.documentService.Download(c.Request.Context(), c.Param("kind"), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
