package shopify

import (
	"fmt"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/gst"
)

// Column names in a Shopify product export.
const (
	colHandle       = "Handle"
	colTitle        = "Title"
	colVariantSKU   = "Variant SKU"
	colVariantPrice = "Variant Price"
	colVariantUnit  = "Variant Weight Unit"
	colUnit         = "Unit"
)

var requiredProductColumns = []string{colHandle, colVariantSKU, colVariantPrice}

// ProductBatch is the outcome of mapping a product export.
type ProductBatch struct {
	Products    []domain.Product
	Errors      []domain.RowError
	TotalRows   int
	SkippedRows int
}

// ParseProducts maps a product export into catalogue entries, one per
// variant SKU. Variant rows inherit the title of their handle's first row.
// A missing GST rate is left empty; order import applies the default.
func ParseProducts(t *Table, opts Options) (*ProductBatch, error) {
	for _, c := range requiredProductColumns {
		if !t.Has(c) {
			return nil, fmt.Errorf("%w: missing column %q", domain.ErrInvalidImportFile, c)
		}
	}
	if opts.MaxRows > 0 && len(t.Rows) > opts.MaxRows {
		return nil, domain.ErrTooManyRows
	}

	batch := &ProductBatch{TotalRows: len(t.Rows)}
	titles := make(map[string]string)
	seen := make(map[string]int)

	for i, row := range t.Rows {
		rowNum := i + 2
		var errs []domain.RowError
		fail := func(field, msg string) {
			errs = append(errs, domain.RowError{Row: rowNum, Field: field, Message: msg})
		}

		handle := t.Value(row, colHandle)
		title := t.Value(row, colTitle)
		if title != "" && handle != "" {
			if _, ok := titles[handle]; !ok {
				titles[handle] = title
			}
		}
		if title == "" {
			title = titles[handle]
		}

		p := domain.Product{
			EntityID: opts.EntityID,
			Handle:   handle,
			SKU:      t.Value(row, colVariantSKU),
			Title:    title,
			HSNCode:  t.Value(row, colHSNCode),
			Unit:     t.First(row, colUnit, colVariantUnit),
		}
		if p.Unit == "" {
			p.Unit = opts.DefaultUnit
		}

		if p.SKU == "" {
			// Image-only rows in Shopify exports carry a handle but no variant.
			if t.Value(row, colVariantPrice) == "" {
				batch.SkippedRows++
				continue
			}
			fail(colVariantSKU, "SKU is required")
		} else if prev, dup := seen[p.SKU]; dup {
			fail(colVariantSKU, fmt.Sprintf("duplicate SKU, first seen on row %d", prev))
		}

		price, err := parseAmount(t.Value(row, colVariantPrice))
		switch {
		case err != nil:
			fail(colVariantPrice, err.Error())
		case price.IsNegative():
			fail(colVariantPrice, "must not be negative")
		}
		p.Price = price

		if v := t.Value(row, colGSTRate); v != "" {
			rate, msg := resolveRate(v, nil, opts.DefaultGSTRate)
			switch {
			case msg != "":
				fail(colGSTRate, msg)
			case rate.Decimal.IsNegative():
				fail(colGSTRate, "must not be negative")
			}
			p.GSTRate = rate
		}

		if p.HSNCode != "" && !gst.ValidHSN(p.HSNCode) {
			fail(colHSNCode, "must be 4 to 8 alphanumeric characters")
		}

		if len(errs) > 0 {
			batch.Errors = append(batch.Errors, errs...)
			batch.SkippedRows++
			continue
		}
		seen[p.SKU] = rowNum
		batch.Products = append(batch.Products, p)
	}
	return batch, nil
}
