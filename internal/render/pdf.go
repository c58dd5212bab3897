package render

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	mutedColor = &props.Color{Red: 100, Green: 100, Blue: 100}
	darkColor  = &props.Color{Red: 33, Green: 37, Blue: 41}
	whiteColor = &props.Color{Red: 255, Green: 255, Blue: 255}
	altBg      = &props.Color{Red: 248, Green: 249, Blue: 250}
	summaryBg  = &props.Color{Red: 245, Green: 245, Blue: 245}
)

// PDFRenderer renders invoices as A4 PDF documents. The built-in fonts lack
// a rupee glyph, so amounts are printed without the symbol.
type PDFRenderer struct{}

// NewPDFRenderer returns a PDF renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// RenderPDF renders the invoice and returns the raw PDF bytes.
func (r *PDFRenderer) RenderPDF(in Input) ([]byte, error) {
	if in.Invoice == nil {
		return nil, fmt.Errorf("render: invoice is nil")
	}
	v := buildView(in, FormatAmount)

	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, v)
	addParties(m, v)
	addLineTable(m, v)
	addTotals(m, v)
	addFooter(m, v)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render: generating invoice pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, v view) {
	titleColor := darkColor
	if v.Number == "DRAFT" {
		titleColor = &props.Color{Red: 180, Green: 35, Blue: 24}
	}
	m.AddRows(
		row.New(10).Add(
			col.New(7).Add(text.New(v.Seller.Name, props.Text{
				Size: 14, Style: fontstyle.Bold, Align: align.Left,
			})),
			col.New(5).Add(text.New(v.Title, props.Text{
				Size: 14, Style: fontstyle.Bold, Align: align.Right, Color: titleColor,
			})),
		),
		row.New(6).Add(
			col.New(7).Add(text.New(v.Seller.Address, props.Text{
				Size: 8, Align: align.Left, Color: mutedColor,
			})),
			col.New(5).Add(text.New("Invoice #: "+v.Number, props.Text{
				Size: 10, Style: fontstyle.Bold, Align: align.Right,
			})),
		),
		row.New(6).Add(
			col.New(7).Add(text.New(fmtField("GSTIN", v.Seller.GSTIN), props.Text{
				Size: 8, Align: align.Left,
			})),
			col.New(5).Add(text.New("Date: "+v.Date, props.Text{
				Size: 8, Align: align.Right,
			})),
		),
	)
	m.AddRows(row.New(3))
}

func addParties(m core.Maroto, v view) {
	label := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: mutedColor}
	value := props.Text{Size: 8, Align: align.Left}
	bold := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}
	headerCell := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 243, Blue: 239}}

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New("BILL TO", label)).WithStyle(headerCell),
			col.New(6).Add(text.New("SUPPLY DETAILS", label)).WithStyle(headerCell),
		),
		row.New(7).Add(
			col.New(6).Add(text.New(v.Buyer.Name, bold)),
			col.New(6).Add(text.New("Place of Supply: "+v.PlaceOfSupply, value)),
		),
		row.New(7).Add(
			col.New(6).Add(text.New(v.Buyer.Address, value)),
			col.New(6).Add(text.New("Tax Type: "+v.TaxType, value)),
		),
	)
	if v.Buyer.GSTIN != "" {
		m.AddRows(row.New(7).Add(
			col.New(12).Add(text.New(fmtField("GSTIN", v.Buyer.GSTIN), value)),
		))
	}
	m.AddRows(row.New(3))
}

func addLineTable(m core.Maroto, v view) {
	head := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center, Color: whiteColor}
	headLeft := head
	headLeft.Align = align.Left
	headCell := &props.Cell{BackgroundColor: darkColor}

	descWidth := 3
	if !v.IntraState {
		descWidth = 4
	}

	cols := []core.Col{
		col.New(1).Add(text.New("#", head)),
		col.New(descWidth).Add(text.New("Description", headLeft)),
		col.New(1).Add(text.New("HSN", head)),
		col.New(1).Add(text.New("Qty", head)),
		col.New(1).Add(text.New("Rate", head)),
		col.New(1).Add(text.New("Taxable", head)),
		col.New(1).Add(text.New("GST%", head)),
	}
	if v.IntraState {
		cols = append(cols,
			col.New(1).Add(text.New("CGST", head)),
			col.New(1).Add(text.New("SGST", head)))
	} else {
		cols = append(cols, col.New(1).Add(text.New("IGST", head)))
	}
	cols = append(cols, col.New(1).Add(text.New("Total", head)))
	for _, c := range cols {
		c.WithStyle(headCell)
	}
	m.AddRows(row.New(8).Add(cols...))

	center := props.Text{Size: 7, Align: align.Center}
	left := props.Text{Size: 7, Align: align.Left}
	right := props.Text{Size: 7, Align: align.Right}

	for i, l := range v.Lines {
		cols := []core.Col{
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.SNo), center)),
			col.New(descWidth).Add(text.New(l.Description, left)),
			col.New(1).Add(text.New(l.HSNCode, center)),
			col.New(1).Add(text.New(l.Qty+" "+l.Unit, right)),
			col.New(1).Add(text.New(l.Rate, right)),
			col.New(1).Add(text.New(l.Taxable, right)),
			col.New(1).Add(text.New(l.GSTRate, center)),
		}
		if v.IntraState {
			cols = append(cols,
				col.New(1).Add(text.New(l.CGST, right)),
				col.New(1).Add(text.New(l.SGST, right)))
		} else {
			cols = append(cols, col.New(1).Add(text.New(l.IGST, right)))
		}
		cols = append(cols, col.New(1).Add(text.New(l.Total, right)))
		if i%2 == 1 {
			for _, c := range cols {
				c.WithStyle(&props.Cell{BackgroundColor: altBg})
			}
		}
		m.AddRows(row.New(7).Add(cols...))
	}
	m.AddRows(row.New(2))
}

func addTotals(m core.Maroto, v view) {
	summaryCell := &props.Cell{BackgroundColor: summaryBg}
	label := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	value := props.Text{Size: 8, Align: align.Right}

	for _, t := range v.Totals {
		m.AddRows(row.New(7).Add(
			col.New(9).Add(text.New(t.Label, label)).WithStyle(summaryCell),
			col.New(3).Add(text.New(t.Value, value)).WithStyle(summaryCell),
		))
	}

	grand := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: whiteColor}
	grandCell := &props.Cell{BackgroundColor: darkColor}
	m.AddRows(row.New(8).Add(
		col.New(9).Add(text.New("Grand Total (INR)", grand)).WithStyle(grandCell),
		col.New(3).Add(text.New(v.GrandTotal, grand)).WithStyle(grandCell),
	))
	m.AddRows(row.New(3))

	if v.AmountInWords != "" {
		m.AddRows(row.New(8).Add(
			col.New(12).Add(text.New("Amount in Words: "+v.AmountInWords, props.Text{
				Size: 8, Style: fontstyle.BoldItalic, Align: align.Left,
			})),
		))
		m.AddRows(row.New(3))
	}
}

func addFooter(m core.Maroto, v view) {
	label := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: mutedColor}
	value := props.Text{Size: 8, Align: align.Left}

	if v.Bank.BankName != "" {
		m.AddRows(
			row.New(6).Add(col.New(12).Add(text.New("BANK DETAILS", label))),
			row.New(6).Add(
				col.New(4).Add(text.New(fmtField("Bank", v.Bank.BankName), value)),
				col.New(4).Add(text.New(fmtField("A/c No", v.Bank.AccountNumber), value)),
				col.New(4).Add(text.New(fmtField("IFSC", v.Bank.IFSCCode), value)),
			),
		)
		m.AddRows(row.New(3))
	}
	if v.Notes != "" {
		m.AddRows(
			row.New(6).Add(col.New(12).Add(text.New("NOTES", label))),
			row.New(8).Add(col.New(12).Add(text.New(v.Notes, value))),
		)
	}
}

func fmtField(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}
