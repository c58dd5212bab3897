package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrEntityNotFound         = errors.New("entity not found")
	ErrOrderNotFound          = errors.New("order not found")
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrOrderAlreadyInvoiced   = errors.New("order already has an invoice")
	ErrInvoiceFinalized       = errors.New("invoice is finalized and can no longer be edited")
	ErrInvoiceNotFinalized    = errors.New("invoice has not been finalized yet")
	ErrInvoiceAuditFailed     = errors.New("invoice failed audit checks")
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrFileTooLarge           = errors.New("file exceeds maximum allowed size")
	ErrInvalidImportFile      = errors.New("import file is missing required columns or rows")
	ErrTooManyRows            = errors.New("import file exceeds maximum row count")
	ErrUploadFailed           = errors.New("file upload to storage failed")
	ErrUnsupportedExportType  = errors.New("unsupported export format")
	ErrDuplicateInvoiceNumber = errors.New("invoice number already issued")
	ErrInvalidStateCode       = errors.New("unknown state code")
	ErrStorageDisabled        = errors.New("document storage is not configured")
	ErrEntityInUse            = errors.New("entity has invoices or orders")
	ErrInvoiceModified        = errors.New("invoice changed while it was being finalized")
)
