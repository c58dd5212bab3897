package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/gst"
	"gstinvoice/internal/port"
	"gstinvoice/internal/service"
)

const dateLayout = "2006-01-02"

var exportContentTypes = map[domain.ExportFormat]string{
	domain.ExportFormatCSV:  "text/csv; charset=utf-8",
	domain.ExportFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// InvoiceHandler handles invoice drafting, finalization and document
// endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

type previewRequest struct {
	Seller           gst.Party       `json:"seller"`
	Buyer            gst.Party       `json:"buyer"`
	Items            []gst.LineItem  `json:"items"`
	DocumentDiscount decimal.Decimal `json:"document_discount"`
}

type invoiceRequest struct {
	Buyer            gst.Party       `json:"buyer"`
	Items            []gst.LineItem  `json:"items"`
	DocumentDiscount decimal.Decimal `json:"document_discount"`
	InvoiceDate      string          `json:"invoice_date"`
	Notes            string          `json:"notes"`
}

func (r *invoiceRequest) toInput(c *gin.Context) (*service.InvoiceInput, bool) {
	entityID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil, false
	}
	input := &service.InvoiceInput{
		EntityID:         entityID,
		Buyer:            r.Buyer,
		Items:            r.Items,
		DocumentDiscount: r.DocumentDiscount,
		Notes:            r.Notes,
	}
	if r.InvoiceDate != "" {
		d, err := time.Parse(dateLayout, r.InvoiceDate)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invoice_date must be YYYY-MM-DD")
			return nil, false
		}
		input.InvoiceDate = &d
	}
	return input, true
}

// Preview handles POST /api/v1/invoices/preview
func (h *InvoiceHandler) Preview(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	detail, err := h.invoiceService.Preview(c.Request.Context(), &service.PreviewInput{
		Seller:           req.Seller,
		Buyer:            req.Buyer,
		Items:            req.Items,
		DocumentDiscount: req.DocumentDiscount,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// Create handles POST /api/v1/entities/:id/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	input, ok := req.toInput(c)
	if !ok {
		return
	}

	detail, err := h.invoiceService.CreateManual(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, detail)
}

// CreateFromOrder handles POST /api/v1/entities/:id/orders/:order_id/invoice
func (h *InvoiceHandler) CreateFromOrder(c *gin.Context) {
	entityID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	orderID, ok := parseUUIDParam(c, "order_id")
	if !ok {
		return
	}

	detail, err := h.invoiceService.CreateFromOrder(c.Request.Context(), entityID, orderID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, detail)
}

// List handles GET /api/v1/entities/:id/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	entityID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	status, ok := parseInvoiceStatus(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	invoices, total, err := h.invoiceService.List(c.Request.Context(), port.InvoiceFilter{
		EntityID: entityID,
		Status:   status,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/entities/:id/invoices/:invoice_id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	entityID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	invoiceID, ok := parseUUIDParam(c, "invoice_id")
	if !ok {
		return
	}

	detail, err := h.invoiceService.GetByID(c.Request.Context(), entityID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// Update handles PUT /api/v1/entities/:id/invoices/:invoice_id
func (h *InvoiceHandler) Update(c *gin.Context) {
	invoiceID, ok := parseUUIDParam(c, "invoice_id")
	if !ok {
		return
	}
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	input, ok := req.toInput(c)
	if !ok {
		return
	}

	detail, err := h.invoiceService.UpdateDraft(c.Request.Context(), invoiceID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// Finalize handles POST /api/v1/entities/:id/invoices/:invoice_id/finalize
func (h *InvoiceHandler) Finalize(c *gin.Context) {
	entityID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	invoiceID, ok := parseUUIDParam(c, "invoice_id")
	if !ok {
		return
	}

	detail, err := h.invoiceService.Finalize(c.Request.Context(), entityID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// HTML handles GET /api/v1/entities/:id/invoices/:invoice_id/html
func (h *InvoiceHandler) HTML(c *gin.Context) {
	entityID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	invoiceID, ok := parseUUIDParam(c, "invoice_id")
	if !ok {
		return
	}

	html, err := h.invoiceService.RenderHTML(c.Request.Context(), entityID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// PDF handles GET /api/v1/entities/:id/invoices/:invoice_id/pdf
func (h *InvoiceHandler) PDF(c *gin.Context) {
	entityID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	invoiceID, ok := parseUUIDParam(c, "invoice_id")
	if !ok {
		return
	}

	pdf, err := h.invoiceService.RenderPDF(c.Request.Context(), entityID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", invoiceID.String()+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Download handles GET /api/v1/entities/:id/invoices/:invoice_id/download
func (h *InvoiceHandler) Download(c *gin.Context) {
	entityID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	invoiceID, ok := parseUUIDParam(c, "invoice_id")
	if !ok {
		return
	}

	url, err := h.invoiceService.DownloadURL(c.Request.Context(), entityID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}

// Export handles GET /api/v1/entities/:id/invoices/export
func (h *InvoiceHandler) Export(c *gin.Context) {
	entityID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	status, ok := parseInvoiceStatus(c)
	if !ok {
		return
	}
	format := domain.ExportFormat(c.DefaultQuery("format", string(domain.ExportFormatCSV)))
	contentType, ok := exportContentTypes[format]
	if !ok {
		HandleError(c, domain.ErrUnsupportedExportType)
		return
	}

	var buf bytes.Buffer
	filename, err := h.invoiceService.Export(c.Request.Context(), &service.ExportInput{
		EntityID: entityID,
		Status:   status,
		Format:   format,
	}, &buf)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func parseInvoiceStatus(c *gin.Context) (domain.InvoiceStatus, bool) {
	switch s := domain.InvoiceStatus(c.Query("status")); s {
	case "", domain.InvoiceStatusDraft, domain.InvoiceStatusFinal:
		return s, true
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "status must be draft or final")
		return "", false
	}
}
