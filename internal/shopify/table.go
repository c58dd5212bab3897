package shopify

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"gstinvoice/internal/domain"
)

// ErrEmptyFile is returned when a file has no header row or no data rows.
var ErrEmptyFile = errors.New("file must contain a header row and at least one data row")

// Table is a parsed spreadsheet: one header row plus data rows.
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// NewTable builds a table with a case-insensitive header index.
func NewTable(header []string, rows [][]string) *Table {
	t := &Table{Header: header, Rows: rows, index: make(map[string]int, len(header))}
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := t.index[key]; !dup {
			t.index[key] = i
		}
	}
	return t
}

// Has reports whether the table has the named column.
func (t *Table) Has(column string) bool {
	_, ok := t.index[normalizeHeader(column)]
	return ok
}

// Value returns the trimmed cell for the named column, or "" when the
// column is absent or the row is short.
func (t *Table) Value(row []string, column string) string {
	i, ok := t.index[normalizeHeader(column)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// First returns the first non-empty value among the named columns.
func (t *Table) First(row []string, columns ...string) string {
	for _, c := range columns {
		if v := t.Value(row, c); v != "" {
			return v
		}
	}
	return ""
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

// ReadTable parses a CSV or XLSX file. XLSX files are read from their
// first sheet.
func ReadTable(r io.Reader, fileType domain.FileType) (*Table, error) {
	var (
		rows [][]string
		err  error
	)
	switch fileType {
	case domain.FileTypeCSV:
		rows, err = readCSV(r)
	case domain.FileTypeXLSX:
		rows, err = readExcel(r)
	default:
		return nil, domain.ErrUnsupportedFileType
	}
	if err != nil {
		return nil, err
	}

	rows = dropBlankRows(rows)
	if len(rows) < 2 {
		return nil, ErrEmptyFile
	}
	return NewTable(rows[0], rows[1:]), nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rows, nil
}

func readExcel(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	return rows, nil
}

func dropBlankRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
