package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/gst"
	"gstinvoice/internal/logger"
	"gstinvoice/internal/service"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, gst.ErrInvalidLineItem):
		return http.StatusBadRequest, "INVALID_LINE_ITEM", err.Error()
	case errors.Is(err, gst.ErrInvalidDiscount):
		return http.StatusBadRequest, "INVALID_DISCOUNT", "document discount must not be negative"
	case errors.Is(err, domain.ErrInvalidStateCode):
		return http.StatusBadRequest, "INVALID_STATE_CODE", err.Error()
	case errors.Is(err, domain.ErrEntityNotFound):
		return http.StatusNotFound, "ENTITY_NOT_FOUND", "entity not found"
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, "ORDER_NOT_FOUND", "order not found"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "INVOICE_NOT_FOUND", "invoice not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrEntityInUse):
		return http.StatusConflict, "ENTITY_IN_USE", "entity has invoices and cannot be deleted"
	case errors.Is(err, domain.ErrOrderAlreadyInvoiced):
		return http.StatusConflict, "ORDER_ALREADY_INVOICED", "order already has an invoice"
	case errors.Is(err, domain.ErrInvoiceFinalized):
		return http.StatusConflict, "INVOICE_FINALIZED", "invoice is finalized and can no longer be edited"
	case errors.Is(err, domain.ErrInvoiceModified):
		return http.StatusConflict, "INVOICE_MODIFIED", "invoice changed while it was being finalized, reload and retry"
	case errors.Is(err, domain.ErrDuplicateInvoiceNumber):
		return http.StatusConflict, "DUPLICATE_INVOICE_NUMBER", "invoice number already issued"
	case errors.Is(err, domain.ErrInvoiceNotFinalized):
		return http.StatusBadRequest, "INVOICE_NOT_FINALIZED", "invoice has not been finalized yet"
	case errors.Is(err, domain.ErrInvoiceAuditFailed):
		return http.StatusUnprocessableEntity, "AUDIT_FAILED", "invoice failed audit checks"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: csv, xlsx"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrInvalidImportFile):
		return http.StatusBadRequest, "INVALID_IMPORT_FILE", err.Error()
	case errors.Is(err, domain.ErrTooManyRows):
		return http.StatusBadRequest, "TOO_MANY_ROWS", "import file exceeds maximum row count"
	case errors.Is(err, domain.ErrUnsupportedExportType):
		return http.StatusBadRequest, "UNSUPPORTED_EXPORT_FORMAT", "unsupported export format; allowed: csv, xlsx"
	case errors.Is(err, domain.ErrStorageDisabled):
		return http.StatusServiceUnavailable, "STORAGE_DISABLED", "document storage is not configured"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Audit failures carry the audit report as error details.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		logger.WithRequest(zap.L(), c.GetString("request_id")).Error("internal error", zap.Error(err))
	}

	apiErr := &APIError{Code: code, Message: msg}
	var auditErr *service.AuditError
	if errors.As(err, &auditErr) {
		apiErr.Details = auditErr.Report
	}
	c.JSON(status, APIResponse{Success: false, Error: apiErr})
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

// parseUUIDParam reads a path parameter as a UUID. It writes a 400
// response and returns false when the value is malformed.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
