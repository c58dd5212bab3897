package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/gst"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the invoice register header row.
var columns = []string{
	"Invoice Number",
	"Invoice Date",
	"Status",
	"Place of Supply",
	"Tax Type",
	"Seller Name",
	"Seller GSTIN",
	"Seller State Code",
	"Buyer Name",
	"Buyer GSTIN",
	"Buyer State Code",
	"Line Item Count",
	"Subtotal",
	"Discount",
	"Taxable Value",
	"CGST",
	"SGST",
	"IGST",
	"Cess",
	"Grand Total",
	"Finalized At",
	"Created At",
}

// Columns returns a copy of the register header row.
func Columns() []string {
	return append([]string(nil), columns...)
}

// Writer wraps csv.Writer for exporting an invoice register.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteInvoices converts a batch of invoices to rows and writes them.
func (w *Writer) WriteInvoices(invoices []domain.Invoice) error {
	for i := range invoices {
		if err := w.csv.Write(invoiceToRow(&invoices[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// invoiceToRow converts one invoice to a register row. Party columns are
// always filled; amount columns stay empty when the stored inputs no
// longer compute.
func invoiceToRow(inv *domain.Invoice) []string {
	row := make([]string, len(columns))

	if inv.InvoiceNumber != nil {
		row[0] = *inv.InvoiceNumber
	}
	row[1] = formatDate(inv.InvoiceDate)
	row[2] = string(inv.Status)
	row[5] = inv.Seller.Name
	row[6] = inv.Seller.GSTIN
	row[7] = inv.Seller.StateCode
	row[8] = inv.Buyer.Name
	row[9] = inv.Buyer.GSTIN
	row[10] = inv.Buyer.StateCode
	row[11] = strconv.Itoa(len(inv.Items))
	row[20] = formatTime(inv.FinalizedAt)
	row[21] = inv.CreatedAt.Format(time.RFC3339)

	computed, err := inv.Compute()
	if err != nil {
		return row
	}

	row[3] = placeOfSupply(computed.Buyer.StateCode)
	row[4] = computed.Jurisdiction.TaxType()
	t := computed.Totals
	row[12] = gst.Fixed(t.Subtotal)
	row[13] = gst.Fixed(t.Discount)
	row[14] = gst.Fixed(t.TaxableValue)
	row[15] = gst.Fixed(t.TotalCGST)
	row[16] = gst.Fixed(t.TotalSGST)
	row[17] = gst.Fixed(t.TotalIGST)
	row[18] = gst.Fixed(t.TotalCess)
	row[19] = gst.Fixed(t.GrandTotal)
	return row
}

func placeOfSupply(code string) string {
	if code == "" {
		return ""
	}
	return gst.PlaceOfSupply(code)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans an entity name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "invoices"
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_invoices_{YYYY-MM-DD}.{ext}
func BuildFilename(name string, format domain.ExportFormat, now time.Time) string {
	return fmt.Sprintf("%s_invoices_%s.%s", SanitizeFilename(name), now.Format("2006-01-02"), format)
}
