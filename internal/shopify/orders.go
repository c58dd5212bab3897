package shopify

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/gst"
)

// Column names in a Shopify order export. HSN Code, GST Rate and GSTIN are
// not standard Shopify columns; stores add them through export apps.
const (
	colName             = "Name"
	colEmail            = "Email"
	colCurrency         = "Currency"
	colCreatedAt        = "Created at"
	colDiscountAmount   = "Discount Amount"
	colLineQuantity     = "Lineitem quantity"
	colLineName         = "Lineitem name"
	colLinePrice        = "Lineitem price"
	colLineSKU          = "Lineitem sku"
	colLineDiscount     = "Lineitem discount"
	colTaxesIncluded    = "Taxes Included"
	colBillingName      = "Billing Name"
	colBillingCompany   = "Billing Company"
	colBillingAddress1  = "Billing Address1"
	colBillingAddress2  = "Billing Address2"
	colBillingCity      = "Billing City"
	colBillingZip       = "Billing Zip"
	colBillingProvince  = "Billing Province"
	colBillingProvName  = "Billing Province Name"
	colShippingName     = "Shipping Name"
	colShippingAddress1 = "Shipping Address1"
	colShippingAddress2 = "Shipping Address2"
	colShippingCity     = "Shipping City"
	colShippingZip      = "Shipping Zip"
	colShippingProvince = "Shipping Province"
	colShippingProvName = "Shipping Province Name"
	colHSNCode          = "HSN Code"
	colGSTRate          = "GST Rate"
	colGSTIN            = "GSTIN"
)

var requiredOrderColumns = []string{colName, colLineQuantity, colLineName, colLinePrice}

// Catalog looks up a product by SKU. It returns nil when the SKU is unknown.
type Catalog func(sku string) *domain.Product

// Options controls how rows are mapped to orders.
type Options struct {
	EntityID uuid.UUID
	// DefaultGSTRate applies when neither the row nor the catalogue has a
	// rate for the item.
	DefaultGSTRate   decimal.Decimal
	PricesIncludeTax bool
	DefaultUnit      string
	Currency         string
	MaxRows          int
	Now              func() time.Time
}

// OrderBatch is the outcome of mapping an order export.
type OrderBatch struct {
	Orders      []domain.Order
	Errors      []domain.RowError
	TotalRows   int
	SkippedRows int
}

type orderDraft struct {
	order    domain.Order
	rows     []int
	lineDisc decimal.Decimal
	failed   bool
}

// ParseOrders maps an order export into orders, one per distinct Name. Any
// row error drops the whole order so no invoice is drafted from a partial
// set of lines.
func ParseOrders(t *Table, opts Options, catalog Catalog) (*OrderBatch, error) {
	for _, c := range requiredOrderColumns {
		if !t.Has(c) {
			return nil, fmt.Errorf("%w: missing column %q", domain.ErrInvalidImportFile, c)
		}
	}
	if opts.MaxRows > 0 && len(t.Rows) > opts.MaxRows {
		return nil, domain.ErrTooManyRows
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	batch := &OrderBatch{TotalRows: len(t.Rows)}
	drafts := make(map[string]*orderDraft)
	var order []string

	for i, row := range t.Rows {
		rowNum := i + 2
		name := t.Value(row, colName)
		if name == "" {
			batch.Errors = append(batch.Errors, domain.RowError{Row: rowNum, Field: colName, Message: "order name is required"})
			batch.SkippedRows++
			continue
		}

		d, ok := drafts[name]
		if !ok {
			d = &orderDraft{order: domain.Order{
				EntityID:         opts.EntityID,
				OrderNumber:      name,
				Currency:         opts.Currency,
				PricesIncludeTax: opts.PricesIncludeTax,
				Status:           domain.OrderStatusPending,
			}, lineDisc: decimal.Zero}
			drafts[name] = d
			order = append(order, name)
		}
		d.rows = append(d.rows, rowNum)

		errs := applyOrderFields(t, row, rowNum, &d.order, opts)
		item, lineDisc, itemErrs := parseOrderItem(t, row, rowNum, opts, catalog)
		errs = append(errs, itemErrs...)
		if len(errs) > 0 {
			batch.Errors = append(batch.Errors, errs...)
			d.failed = true
			continue
		}
		d.order.Items = append(d.order.Items, item)
		d.lineDisc = d.lineDisc.Add(lineDisc)
	}

	for _, name := range order {
		d := drafts[name]
		if d.failed {
			batch.SkippedRows += len(d.rows)
			continue
		}
		// Shopify's Discount Amount includes line-level discounts, which are
		// already folded into each item's discount percent.
		d.order.DocumentDiscount = decimal.Max(d.order.DocumentDiscount.Sub(d.lineDisc), decimal.Zero)
		if d.order.OrderedAt.IsZero() {
			d.order.OrderedAt = opts.Now().UTC()
		}
		batch.Orders = append(batch.Orders, d.order)
	}
	return batch, nil
}

// applyOrderFields copies order-level columns. Shopify fills them on the
// first row of each order only, so empty cells never overwrite.
func applyOrderFields(t *Table, row []string, rowNum int, o *domain.Order, opts Options) []domain.RowError {
	var errs []domain.RowError

	setIfEmpty := func(dst *string, v string) {
		if *dst == "" && v != "" {
			*dst = v
		}
	}
	setIfEmpty(&o.CustomerEmail, t.Value(row, colEmail))
	setIfEmpty(&o.CustomerName, t.First(row, colBillingCompany, colBillingName, colShippingName))
	setIfEmpty(&o.BillingAddress, joinAddress(
		t.Value(row, colBillingAddress1), t.Value(row, colBillingAddress2),
		t.Value(row, colBillingCity), t.Value(row, colBillingZip)))
	setIfEmpty(&o.ShippingAddress, joinAddress(
		t.Value(row, colShippingAddress1), t.Value(row, colShippingAddress2),
		t.Value(row, colShippingCity), t.Value(row, colShippingZip)))
	setIfEmpty(&o.GSTIN, strings.ToUpper(t.Value(row, colGSTIN)))

	if v := t.Value(row, colCurrency); v != "" {
		o.Currency = v
	}
	if v := t.Value(row, colTaxesIncluded); v != "" {
		o.PricesIncludeTax = strings.EqualFold(v, "true") || strings.EqualFold(v, "yes")
	}

	if o.StateCode == "" {
		province := t.First(row, colBillingProvName, colBillingProvince, colShippingProvName, colShippingProvince)
		if province != "" {
			if s, ok := gst.LookupState(province); ok {
				o.State = s.Name
				o.StateCode = s.GSTCode
			} else {
				errs = append(errs, domain.RowError{Row: rowNum, Field: colBillingProvince,
					Message: fmt.Sprintf("unknown Indian state %q", province)})
			}
		}
	}

	if v := t.Value(row, colCreatedAt); v != "" && o.OrderedAt.IsZero() {
		ts, err := parseTimestamp(v)
		if err != nil {
			errs = append(errs, domain.RowError{Row: rowNum, Field: colCreatedAt, Message: err.Error()})
		} else {
			o.OrderedAt = ts.UTC()
		}
	}

	if v := t.Value(row, colDiscountAmount); v != "" {
		amt, err := parseAmount(v)
		switch {
		case err != nil:
			errs = append(errs, domain.RowError{Row: rowNum, Field: colDiscountAmount, Message: err.Error()})
		case amt.IsNegative():
			errs = append(errs, domain.RowError{Row: rowNum, Field: colDiscountAmount, Message: "must not be negative"})
		case o.DocumentDiscount.IsZero():
			o.DocumentDiscount = amt
		}
	}
	return errs
}

func parseOrderItem(t *Table, row []string, rowNum int, opts Options, catalog Catalog) (domain.OrderItem, decimal.Decimal, []domain.RowError) {
	var errs []domain.RowError
	fail := func(field, msg string) {
		errs = append(errs, domain.RowError{Row: rowNum, Field: field, Message: msg})
	}

	item := domain.OrderItem{
		Name: t.Value(row, colLineName),
		SKU:  t.Value(row, colLineSKU),
		Unit: opts.DefaultUnit,
	}
	if item.Name == "" {
		fail(colLineName, "line item name is required")
	}

	qty, err := parseAmount(t.Value(row, colLineQuantity))
	switch {
	case err != nil:
		fail(colLineQuantity, err.Error())
	case qty.IsNegative():
		fail(colLineQuantity, "must not be negative")
	}
	item.Quantity = qty

	price, err := parseAmount(t.Value(row, colLinePrice))
	switch {
	case err != nil:
		fail(colLinePrice, err.Error())
	case price.IsNegative():
		fail(colLinePrice, "must not be negative")
	}
	item.UnitPrice = price

	lineDisc := decimal.Zero
	if v := t.Value(row, colLineDiscount); v != "" {
		lineDisc, err = parseAmount(v)
		if err != nil {
			fail(colLineDiscount, err.Error())
		}
	}
	pct, msg := discountPercent(qty, price, lineDisc)
	if msg != "" {
		fail(colLineDiscount, msg)
	}
	item.DiscountPercent = pct

	var product *domain.Product
	if item.SKU != "" && catalog != nil {
		product = catalog(item.SKU)
	}

	item.HSNCode = t.Value(row, colHSNCode)
	if item.HSNCode == "" && product != nil {
		item.HSNCode = product.HSNCode
	}
	if product != nil && product.Unit != "" {
		item.Unit = product.Unit
	}

	rate, msg := resolveRate(t.Value(row, colGSTRate), product, opts.DefaultGSTRate)
	if msg != "" {
		fail(colGSTRate, msg)
	}
	item.GSTRate = rate

	if len(errs) == 0 {
		if err := gst.ValidateLineItem(rowNum-2, item.LineItem(opts.PricesIncludeTax)); err != nil {
			var le *gst.InvalidLineItemError
			if errors.As(err, &le) {
				fail(le.Field, le.Reason)
			} else {
				fail("", err.Error())
			}
		}
	}
	return item, lineDisc, errs
}

// discountPercent converts a Shopify line discount amount into the percent
// of the line's gross value.
func discountPercent(qty, price, amount decimal.Decimal) (decimal.Decimal, string) {
	if amount.IsNegative() {
		return decimal.Zero, "must not be negative"
	}
	if amount.IsZero() {
		return decimal.Zero, ""
	}
	gross := qty.Mul(price)
	if !gross.IsPositive() || amount.GreaterThan(gross) {
		return decimal.Zero, "discount exceeds the line value"
	}
	return amount.Div(gross).Mul(decimal.NewFromInt(100)), ""
}

// resolveRate picks the GST rate for a row: the row's own GST Rate column,
// then the catalogue rate for the SKU, then the configured default.
func resolveRate(cell string, product *domain.Product, fallback decimal.Decimal) (decimal.NullDecimal, string) {
	if cell != "" {
		r, err := parseAmount(strings.TrimSuffix(cell, "%"))
		if err != nil {
			return decimal.NullDecimal{}, err.Error()
		}
		return decimal.NullDecimal{Decimal: r, Valid: true}, ""
	}
	if product != nil && product.GSTRate.Valid {
		return product.GSTRate, ""
	}
	return decimal.NullDecimal{Decimal: fallback, Valid: true}, ""
}

func parseAmount(v string) (decimal.Decimal, error) {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "₹")
	v = strings.ReplaceAll(v, ",", "")
	v = strings.TrimSpace(v)
	if v == "" {
		return decimal.Zero, fmt.Errorf("value is required")
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", v)
	}
	return d, nil
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(v string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a recognised timestamp", v)
}

func joinAddress(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
