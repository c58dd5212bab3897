package render

import (
	"bytes"
	"fmt"
	"html/template"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{.Title}} {{.Number}}</title>
  <style>
    * { box-sizing: border-box; }
    body { margin: 0; padding: 32px; font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; color: #1a1f36; background: #f7f9fc; }
    .invoice-card { background: #fff; max-width: 960px; margin: 0 auto; padding: 40px; border-radius: 4px; box-shadow: 0 2px 5px rgba(0,0,0,0.04); }
    .header { display: flex; justify-content: space-between; margin-bottom: 24px; }
    .header h1 { margin: 0; font-size: 22px; }
    .draft { color: #b42318; }
    .meta-grid { display: flex; gap: 24px; margin-bottom: 24px; }
    .col { flex: 1; }
    .label { font-size: 11px; text-transform: uppercase; color: #8792a2; margin-bottom: 4px; font-weight: 600; }
    .value { font-size: 13px; line-height: 1.5; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
    th { text-align: left; font-size: 10px; text-transform: uppercase; color: #8792a2; border-bottom: 1px solid #e3e8ee; padding: 8px 4px; }
    td { padding: 8px 4px; border-bottom: 1px solid #e3e8ee; font-size: 12px; vertical-align: top; }
    .num { text-align: right; white-space: nowrap; }
    .totals { display: flex; flex-direction: column; align-items: flex-end; }
    .total-row { display: flex; justify-content: space-between; width: 300px; padding: 4px 0; font-size: 13px; }
    .total-final { border-top: 1px solid #e3e8ee; margin-top: 8px; padding-top: 8px; font-weight: 700; font-size: 15px; }
    .words { margin-top: 16px; font-size: 13px; font-style: italic; }
    .footer { margin-top: 32px; font-size: 12px; color: #697386; border-top: 1px solid #e3e8ee; padding-top: 16px; }
    .warnings { color: #b54708; font-size: 12px; }
  </style>
</head>
<body>
  <div class="invoice-card">
    <div class="header">
      <div>
        <h1{{if eq .Number "DRAFT"}} class="draft"{{end}}>{{.Title}}</h1>
        <div class="value">No. {{.Number}} &middot; Date {{.Date}}</div>
      </div>
      <div class="value" style="text-align: right;">
        <strong>{{.Seller.Name}}</strong><br>
        {{if .Seller.Address}}{{.Seller.Address}}<br>{{end}}
        {{if .Seller.GSTIN}}GSTIN: {{.Seller.GSTIN}}<br>{{end}}
        {{if .Seller.State}}{{.Seller.State}}{{end}}
      </div>
    </div>

    <div class="meta-grid">
      <div class="col">
        <div class="label">Bill to</div>
        <div class="value">
          <strong>{{.Buyer.Name}}</strong><br>
          {{if .Buyer.Address}}{{.Buyer.Address}}<br>{{end}}
          {{if .Buyer.GSTIN}}GSTIN: {{.Buyer.GSTIN}}<br>{{end}}
          {{if .Buyer.Email}}{{.Buyer.Email}}{{end}}
        </div>
      </div>
      <div class="col">
        <div class="label">Place of supply</div>
        <div class="value">{{.PlaceOfSupply}}</div>
        <div class="label" style="margin-top: 12px;">Tax type</div>
        <div class="value">{{.TaxType}}</div>
      </div>
    </div>

    <table>
      <thead>
        <tr>
          <th>#</th>
          <th>Description</th>
          <th>HSN</th>
          <th class="num">Qty</th>
          <th class="num">Rate</th>
          <th class="num">Disc</th>
          <th class="num">Taxable</th>
          <th class="num">GST</th>
          {{if .IntraState}}<th class="num">CGST</th><th class="num">SGST</th>{{else}}<th class="num">IGST</th>{{end}}
          <th class="num">Total</th>
        </tr>
      </thead>
      <tbody>
        {{range .Lines}}
        <tr>
          <td>{{.SNo}}</td>
          <td>{{.Description}}</td>
          <td>{{.HSNCode}}</td>
          <td class="num">{{.Qty}} {{.Unit}}</td>
          <td class="num">{{.Rate}}</td>
          <td class="num">{{.Discount}}</td>
          <td class="num">{{.Taxable}}</td>
          <td class="num">{{.GSTRate}}</td>
          {{if $.IntraState}}<td class="num">{{.CGST}}</td><td class="num">{{.SGST}}</td>{{else}}<td class="num">{{.IGST}}</td>{{end}}
          <td class="num">{{.Total}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      {{range .Totals}}
      <div class="total-row"><span>{{.Label}}</span><span>{{.Value}}</span></div>
      {{end}}
      <div class="total-row total-final"><span>Grand Total</span><span>{{.GrandTotal}}</span></div>
    </div>
    <div class="words">{{.AmountInWords}}</div>

    {{if .Warnings}}
    <div class="warnings">{{range .Warnings}}<div>{{.}}</div>{{end}}</div>
    {{end}}

    <div class="footer">
      {{if .Bank.BankName}}
      <div>Bank: {{.Bank.BankName}} &middot; A/c {{.Bank.AccountNumber}} &middot; IFSC {{.Bank.IFSCCode}}</div>
      {{end}}
      {{if .Notes}}<div style="margin-top: 8px;">{{.Notes}}</div>{{end}}
    </div>
  </div>
</body>
</html>
`

// HTMLRenderer renders invoices as standalone HTML pages.
type HTMLRenderer struct {
	tpl *template.Template
}

// NewHTMLRenderer parses the invoice template.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		tpl: template.Must(template.New("invoice").Parse(invoiceHTMLTemplate)),
	}
}

// RenderHTML renders the invoice to an HTML document.
func (r *HTMLRenderer) RenderHTML(in Input) (string, error) {
	if in.Invoice == nil {
		return "", fmt.Errorf("render: invoice is nil")
	}
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, buildView(in, FormatINR)); err != nil {
		return "", fmt.Errorf("render: executing invoice template: %w", err)
	}
	return buf.String(), nil
}
