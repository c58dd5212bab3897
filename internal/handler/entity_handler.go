package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstinvoice/internal/service"
)

// EntityHandler handles seller entity endpoints.
type EntityHandler struct {
	entityService service.EntityService
}

// NewEntityHandler creates a new EntityHandler.
func NewEntityHandler(entityService service.EntityService) *EntityHandler {
	return &EntityHandler{entityService: entityService}
}

type entityRequest struct {
	Name          string `json:"name" binding:"required"`
	GSTIN         string `json:"gstin"`
	Address       string `json:"address"`
	StateCode     string `json:"state_code" binding:"required"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	InvoicePrefix string `json:"invoice_prefix"`
}

func (r *entityRequest) toInput() *service.EntityInput {
	return &service.EntityInput{
		Name:          r.Name,
		GSTIN:         r.GSTIN,
		Address:       r.Address,
		StateCode:     r.StateCode,
		Email:         r.Email,
		Phone:         r.Phone,
		BankName:      r.BankName,
		AccountNumber: r.AccountNumber,
		IFSCCode:      r.IFSCCode,
		InvoicePrefix: r.InvoicePrefix,
	}
}

// Create handles POST /api/v1/entities
func (h *EntityHandler) Create(c *gin.Context) {
	var req entityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name and state_code are required")
		return
	}

	entity, err := h.entityService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, entity)
}

// List handles GET /api/v1/entities
func (h *EntityHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	entities, total, err := h.entityService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, entities, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/entities/:id
func (h *EntityHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	entity, err := h.entityService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entity)
}

// Update handles PUT /api/v1/entities/:id
func (h *EntityHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req entityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name and state_code are required")
		return
	}

	entity, err := h.entityService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entity)
}

// Delete handles DELETE /api/v1/entities/:id
func (h *EntityHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.entityService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "entity deleted"})
}
