package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/gst"
	"gstinvoice/internal/handler"
	"gstinvoice/internal/service"
	"gstinvoice/internal/validator"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{&gst.InvalidLineItemError{Index: 1, Field: "hsn_code", Reason: "must be 4, 6 or 8 digits"}, http.StatusBadRequest, "INVALID_LINE_ITEM"},
		{gst.ErrInvalidDiscount, http.StatusBadRequest, "INVALID_DISCOUNT"},
		{fmt.Errorf("entityService.Create: %w", domain.ErrInvalidStateCode), http.StatusBadRequest, "INVALID_STATE_CODE"},
		{domain.ErrEntityNotFound, http.StatusNotFound, "ENTITY_NOT_FOUND"},
		{domain.ErrOrderNotFound, http.StatusNotFound, "ORDER_NOT_FOUND"},
		{domain.ErrInvoiceNotFound, http.StatusNotFound, "INVOICE_NOT_FOUND"},
		{domain.ErrEntityInUse, http.StatusConflict, "ENTITY_IN_USE"},
		{domain.ErrOrderAlreadyInvoiced, http.StatusConflict, "ORDER_ALREADY_INVOICED"},
		{domain.ErrInvoiceFinalized, http.StatusConflict, "INVOICE_FINALIZED"},
		{domain.ErrInvoiceModified, http.StatusConflict, "INVOICE_MODIFIED"},
		{domain.ErrDuplicateInvoiceNumber, http.StatusConflict, "DUPLICATE_INVOICE_NUMBER"},
		{domain.ErrInvoiceNotFinalized, http.StatusBadRequest, "INVOICE_NOT_FINALIZED"},
		{&service.AuditError{Report: &validator.Report{}}, http.StatusUnprocessableEntity, "AUDIT_FAILED"},
		{domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{fmt.Errorf("%w: missing Name column", domain.ErrInvalidImportFile), http.StatusBadRequest, "INVALID_IMPORT_FILE"},
		{domain.ErrTooManyRows, http.StatusBadRequest, "TOO_MANY_ROWS"},
		{domain.ErrUnsupportedExportType, http.StatusBadRequest, "UNSUPPORTED_EXPORT_FORMAT"},
		{domain.ErrStorageDisabled, http.StatusServiceUnavailable, "STORAGE_DISABLED"},
		{domain.ErrUploadFailed, http.StatusInternalServerError, "UPLOAD_FAILED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestMapDomainError_LineItemMessageNamesTheField(t *testing.T) {
	_, _, msg := handler.MapDomainError(&gst.InvalidLineItemError{Index: 0, Field: "quantity", Reason: "must not be negative"})
	assert.Equal(t, "line item 1: quantity must not be negative", msg)
}

func TestHandleError_AuditReportInDetails(t *testing.T) {
	report := &validator.Report{
		Errors: []validator.Finding{{
			RuleKey:   "req.buyer.name",
			FieldPath: "buyer.name",
			Severity:  domain.ValidationSeverityError,
			Message:   "buyer name is required",
		}},
	}
	c, w := newContext(http.MethodPost, "/", nil)

	handler.HandleError(c, fmt.Errorf("invoiceService.Finalize: %w", &service.AuditError{Report: report}))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string           `json:"code"`
			Details validator.Report `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "AUDIT_FAILED", resp.Error.Code)
	require.Len(t, resp.Error.Details.Errors, 1)
	assert.Equal(t, "buyer.name", resp.Error.Details.Errors[0].FieldPath)
}

func TestHandleError_InternalErrorHidesCause(t *testing.T) {
	c, w := newContext(http.MethodGet, "/", nil)

	handler.HandleError(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}
