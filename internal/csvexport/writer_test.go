package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/gst"
)

func finalInvoice(buyerState string, discount int64) domain.Invoice {
	number := "INV/24-25/0001"
	issued := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	finalized := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	return domain.Invoice{
		ID:            uuid.New(),
		EntityID:      uuid.New(),
		InvoiceNumber: &number,
		InvoiceDate:   &issued,
		Status:        domain.InvoiceStatusFinal,
		Seller:        domain.PartySnapshot{Name: "Seller Corp", GSTIN: "29ABCDE1234F1Z5", StateCode: "29"},
		Buyer:         domain.PartySnapshot{Name: "Buyer Inc", GSTIN: "07FGHIJ5678K2Z3", StateCode: buyerState},
		Items: domain.LineItems{
			{Description: "Item A", Quantity: decimal.NewFromInt(1), Unit: "PCS", Rate: decimal.NewFromInt(1000), GSTRate: gst.Rate(18)},
			{Description: "Item B", Quantity: decimal.NewFromInt(2), Unit: "PCS", Rate: decimal.NewFromInt(500), GSTRate: gst.Rate(18)},
		},
		DocumentDiscount: decimal.NewFromInt(discount),
		FinalizedAt:      &finalized,
		CreatedAt:        time.Date(2025, 1, 14, 8, 0, 0, 0, time.UTC),
	}
}

func readRows(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	rows, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	rows := readRows(t, &buf)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 22)
	assert.Equal(t, "Invoice Number", rows[0][0])
	assert.Equal(t, "Grand Total", rows[0][19])
	assert.Equal(t, "Created At", rows[0][21])
}

func TestWriteInvoices_IntraState(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteInvoices([]domain.Invoice{finalInvoice("29", 0)}))
	w.Flush()
	require.NoError(t, w.Error())

	row := readRows(t, &buf)[0]
	assert.Equal(t, "INV/24-25/0001", row[0])
	assert.Equal(t, "2025-01-15", row[1])
	assert.Equal(t, "final", row[2])
	assert.Equal(t, "29-Karnataka", row[3])
	assert.Equal(t, "CGST+SGST", row[4])
	assert.Equal(t, "Seller Corp", row[5])
	assert.Equal(t, "07FGHIJ5678K2Z3", row[9])
	assert.Equal(t, "2", row[11])
	assert.Equal(t, "2000.00", row[12])
	assert.Equal(t, "0.00", row[13])
	assert.Equal(t, "2000.00", row[14])
	assert.Equal(t, "180.00", row[15])
	assert.Equal(t, "180.00", row[16])
	assert.Equal(t, "0.00", row[17])
	assert.Equal(t, "2360.00", row[19])
	assert.Equal(t, "2025-01-15T10:30:00Z", row[20])
	assert.Equal(t, "2025-01-14T08:00:00Z", row[21])
}

func TestWriteInvoices_InterStateWithDiscount(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteInvoices([]domain.Invoice{finalInvoice("07", 236)}))
	w.Flush()

	row := readRows(t, &buf)[0]
	assert.Equal(t, "07-Delhi", row[3])
	assert.Equal(t, "IGST", row[4])
	assert.Equal(t, "2000.00", row[12])
	assert.Equal(t, "236.00", row[13])
	assert.Equal(t, "1800.00", row[14])
	assert.Equal(t, "0.00", row[15])
	assert.Equal(t, "324.00", row[17])
	assert.Equal(t, "2124.00", row[19])
}

func TestWriteInvoices_DraftWithBadInputs(t *testing.T) {
	inv := finalInvoice("29", 0)
	inv.Status = domain.InvoiceStatusDraft
	inv.InvoiceNumber = nil
	inv.InvoiceDate = nil
	inv.FinalizedAt = nil
	inv.Items[0].GSTRate = decimal.NullDecimal{}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteInvoices([]domain.Invoice{inv}))
	w.Flush()

	row := readRows(t, &buf)[0]
	assert.Empty(t, row[0])
	assert.Equal(t, "draft", row[2])
	assert.Equal(t, "Buyer Inc", row[8])
	for i := 12; i <= 19; i++ {
		assert.Empty(t, row[i], "column %d should be empty when amounts cannot compute", i)
	}
	assert.Empty(t, row[20])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, []domain.Invoice{finalInvoice("29", 0), finalInvoice("07", 236)}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Invoice Number", rows[0][0])
	assert.Equal(t, "INV/24-25/0001", rows[1][0])

	v, err := f.GetCellValue("Invoices", "T3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "2124", v)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Acme Textiles Pvt Ltd", "Acme_Textiles_Pvt_Ltd"},
		{"special chars", "FY 2024-25 / Q3 (Oct–Dec)", "FY_2024-25_Q3_Oct_Dec"},
		{"unicode", "कंपनी Traders", "Traders"},
		{"hyphens and underscores preserved", "my-shop_2025", "my-shop_2025"},
		{"consecutive underscores collapsed", "test___shop", "test_shop"},
		{"leading/trailing cleaned", "  hello  ", "hello"},
		{
			"long name truncated",
			"abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-extra",
			"abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrs",
		},
		{"empty", "", "invoices"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Acme_Textiles_invoices_2025-03-31.xlsx", BuildFilename("Acme Textiles", domain.ExportFormatXLSX, now))
	assert.Equal(t, "Acme_Textiles_invoices_2025-03-31.csv", BuildFilename("Acme Textiles", domain.ExportFormatCSV, now))
}
