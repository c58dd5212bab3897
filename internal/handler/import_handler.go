package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/service"
)

// ImportHandler handles storefront export uploads and the imported
// catalogue and order listings.
type ImportHandler struct {
	importService service.ImportService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportOrders handles POST /api/v1/entities/:id/imports/orders
func (h *ImportHandler) ImportOrders(c *gin.Context) {
	h.upload(c, h.importService.ImportOrders)
}

// ImportProducts handles POST /api/v1/entities/:id/imports/products
func (h *ImportHandler) ImportProducts(c *gin.Context) {
	h.upload(c, h.importService.ImportProducts)
}

func (h *ImportHandler) upload(c *gin.Context, run func(context.Context, *service.ImportInput) (*domain.ImportResult, error)) {
	entityID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := run(c.Request.Context(), &service.ImportInput{
		EntityID: entityID,
		FileName: header.Filename,
		Size:     header.Size,
		Body:     file,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// ListOrders handles GET /api/v1/entities/:id/orders
func (h *ImportHandler) ListOrders(c *gin.Context) {
	entityID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	var status domain.OrderStatus
	switch s := domain.OrderStatus(c.Query("status")); s {
	case "":
	case domain.OrderStatusPending, domain.OrderStatusDrafting, domain.OrderStatusInvoiced, domain.OrderStatusFailed:
		status = s
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "status must be one of pending, drafting, invoiced, failed")
		return
	}

	orders, total, err := h.importService.ListOrders(c.Request.Context(), entityID, status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, orders, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ListProducts handles GET /api/v1/entities/:id/products
func (h *ImportHandler) ListProducts(c *gin.Context) {
	entityID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	products, total, err := h.importService.ListProducts(c.Request.Context(), entityID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, products, PagMeta{Total: total, Offset: offset, Limit: limit})
}
