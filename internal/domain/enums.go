package domain

// OrderStatus tracks whether an imported order has been invoiced.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusDrafting OrderStatus = "drafting"
	OrderStatusInvoiced OrderStatus = "invoiced"
	OrderStatusFailed   OrderStatus = "failed"
)

// InvoiceStatus is the lifecycle state of a persisted invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusFinal InvoiceStatus = "final"
)

// ImportKind identifies which storefront export was uploaded.
type ImportKind string

const (
	ImportKindOrders   ImportKind = "orders"
	ImportKindProducts ImportKind = "products"
)

// FileType is an accepted spreadsheet upload type.
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeXLSX FileType = "xlsx"
)

// AllowedImportExtensions maps file extensions (without dot) to FileType.
var AllowedImportExtensions = map[string]FileType{
	"csv":  FileTypeCSV,
	"xlsx": FileTypeXLSX,
}

// ExportFormat is an invoice register export format.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ValidationRuleType classifies an invoice audit rule.
type ValidationRuleType string

const (
	ValidationRuleRequired   ValidationRuleType = "required"
	ValidationRuleRegex      ValidationRuleType = "regex"
	ValidationRuleSumCheck   ValidationRuleType = "sum_check"
	ValidationRuleCrossField ValidationRuleType = "cross_field"
	ValidationRuleCustom     ValidationRuleType = "custom"
)

// ValidationSeverity decides whether a failed rule blocks finalization.
type ValidationSeverity string

const (
	ValidationSeverityError   ValidationSeverity = "error"
	ValidationSeverityWarning ValidationSeverity = "warning"
)
