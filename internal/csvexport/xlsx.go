package csvexport

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"gstinvoice/internal/domain"
)

const registerSheet = "Invoices"

// amountColumns are written as numbers so spreadsheets can sum them.
var amountColumns = map[int]bool{12: true, 13: true, 14: true, 15: true, 16: true, 17: true, 18: true, 19: true}

// WriteXLSX writes the invoice register as a single-sheet workbook.
func WriteXLSX(w io.Writer, invoices []domain.Invoice) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), registerSheet); err != nil {
		return fmt.Errorf("csvexport: naming sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("csvexport: creating header style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("csvexport: creating amount style: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(registerSheet, "A1", &header); err != nil {
		return fmt.Errorf("csvexport: writing header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(registerSheet, "A1", last, bold); err != nil {
		return fmt.Errorf("csvexport: styling header: %w", err)
	}

	for i := range invoices {
		cells := invoiceToRow(&invoices[i])
		values := make([]interface{}, len(cells))
		for j, c := range cells {
			values[j] = c
			if amountColumns[j] && c != "" {
				if v, perr := strconv.ParseFloat(c, 64); perr == nil {
					values[j] = v
				}
			}
		}
		start, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(registerSheet, start, &values); err != nil {
			return fmt.Errorf("csvexport: writing row %d: %w", i+2, err)
		}
	}
	if len(invoices) > 0 {
		from, _ := excelize.CoordinatesToCellName(13, 2)
		to, _ := excelize.CoordinatesToCellName(20, len(invoices)+1)
		if err := f.SetCellStyle(registerSheet, from, to, money); err != nil {
			return fmt.Errorf("csvexport: styling amounts: %w", err)
		}
	}
	if err := f.SetColWidth(registerSheet, "A", "V", 16); err != nil {
		return fmt.Errorf("csvexport: sizing columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("csvexport: writing workbook: %w", err)
	}
	return nil
}
