package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstinvoice/internal/gst"
)

// Entity is a seller profile that issues invoices.
type Entity struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	GSTIN          string    `db:"gstin" json:"gstin"`
	Address        string    `db:"address" json:"address"`
	State          string    `db:"state" json:"state"`
	StateCode      string    `db:"state_code" json:"state_code"`
	Email          string    `db:"email" json:"email"`
	Phone          string    `db:"phone" json:"phone"`
	BankName       string    `db:"bank_name" json:"bank_name"`
	AccountNumber  string    `db:"account_number" json:"account_number"`
	IFSCCode       string    `db:"ifsc_code" json:"ifsc_code"`
	InvoicePrefix  string    `db:"invoice_prefix" json:"invoice_prefix"`
	NextInvoiceSeq int64     `db:"next_invoice_seq" json:"next_invoice_seq"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Party returns the entity as the seller of an invoice.
func (e *Entity) Party() gst.Party {
	return gst.Party{
		Name:      e.Name,
		GSTIN:     e.GSTIN,
		Address:   e.Address,
		State:     e.State,
		StateCode: e.StateCode,
		Email:     e.Email,
	}
}

// Product is a catalogue entry imported from a storefront product export.
type Product struct {
	ID        uuid.UUID           `db:"id" json:"id"`
	EntityID  uuid.UUID           `db:"entity_id" json:"entity_id"`
	Handle    string              `db:"handle" json:"handle"`
	SKU       string              `db:"sku" json:"sku"`
	Title     string              `db:"title" json:"title"`
	HSNCode   string              `db:"hsn_code" json:"hsn_code"`
	GSTRate   decimal.NullDecimal `db:"gst_rate" json:"gst_rate"`
	Price     decimal.Decimal     `db:"price" json:"price"`
	Unit      string              `db:"unit" json:"unit"`
	CreatedAt time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt time.Time           `db:"updated_at" json:"updated_at"`
}

// Order is an imported storefront order awaiting or holding an invoice.
type Order struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	EntityID         uuid.UUID       `db:"entity_id" json:"entity_id"`
	OrderNumber      string          `db:"order_number" json:"order_number"`
	OrderedAt        time.Time       `db:"ordered_at" json:"ordered_at"`
	Currency         string          `db:"currency" json:"currency"`
	CustomerName     string          `db:"customer_name" json:"customer_name"`
	CustomerEmail    string          `db:"customer_email" json:"customer_email"`
	BillingAddress   string          `db:"billing_address" json:"billing_address"`
	ShippingAddress  string          `db:"shipping_address" json:"shipping_address"`
	State            string          `db:"state" json:"state"`
	StateCode        string          `db:"state_code" json:"state_code"`
	GSTIN            string          `db:"gstin" json:"gstin"`
	DocumentDiscount decimal.Decimal `db:"document_discount" json:"document_discount"`
	PricesIncludeTax bool            `db:"prices_include_tax" json:"prices_include_tax"`
	Status           OrderStatus     `db:"status" json:"status"`
	FailureReason    *string         `db:"failure_reason" json:"failure_reason,omitempty"`
	InvoiceID        *uuid.UUID      `db:"invoice_id" json:"invoice_id,omitempty"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
	Items            []OrderItem     `db:"-" json:"items"`
}

// Buyer returns the order's customer as the buyer of an invoice.
func (o *Order) Buyer() gst.Party {
	addr := o.BillingAddress
	if strings.TrimSpace(addr) == "" {
		addr = o.ShippingAddress
	}
	return gst.Party{
		Name:      o.CustomerName,
		GSTIN:     o.GSTIN,
		Address:   addr,
		State:     o.State,
		StateCode: o.StateCode,
		Email:     o.CustomerEmail,
	}
}

// LineItems maps the order's items to invoice line inputs.
func (o *Order) LineItems() []gst.LineItem {
	items := make([]gst.LineItem, len(o.Items))
	for i := range o.Items {
		items[i] = o.Items[i].LineItem(o.PricesIncludeTax)
	}
	return items
}

// OrderItem is a single line of an imported order.
type OrderItem struct {
	ID              uuid.UUID           `db:"id" json:"id"`
	OrderID         uuid.UUID           `db:"order_id" json:"order_id"`
	Position        int                 `db:"position" json:"position"`
	Name            string              `db:"name" json:"name"`
	SKU             string              `db:"sku" json:"sku"`
	HSNCode         string              `db:"hsn_code" json:"hsn_code"`
	Quantity        decimal.Decimal     `db:"quantity" json:"quantity"`
	Unit            string              `db:"unit" json:"unit"`
	UnitPrice       decimal.Decimal     `db:"unit_price" json:"unit_price"`
	DiscountPercent decimal.Decimal     `db:"discount_percent" json:"discount_percent"`
	GSTRate         decimal.NullDecimal `db:"gst_rate" json:"gst_rate"`
}

// LineItem maps the order item to an invoice line input.
func (i *OrderItem) LineItem(pricesIncludeTax bool) gst.LineItem {
	return gst.LineItem{
		Description:      i.Name,
		HSNCode:          i.HSNCode,
		Quantity:         i.Quantity,
		Unit:             i.Unit,
		Rate:             i.UnitPrice,
		DiscountPercent:  i.DiscountPercent,
		GSTRate:          i.GSTRate,
		PriceIncludesTax: pricesIncludeTax,
	}
}

// Invoice is a persisted invoice. Only inputs are stored; computed amounts
// are rebuilt with Compute whenever they are needed. GrandTotal is kept
// for listing and export.
type Invoice struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	EntityID         uuid.UUID       `db:"entity_id" json:"entity_id"`
	OrderID          *uuid.UUID      `db:"order_id" json:"order_id,omitempty"`
	InvoiceNumber    *string         `db:"invoice_number" json:"invoice_number,omitempty"`
	InvoiceDate      *time.Time      `db:"invoice_date" json:"invoice_date,omitempty"`
	Status           InvoiceStatus   `db:"status" json:"status"`
	Seller           PartySnapshot   `db:"seller" json:"seller"`
	Buyer            PartySnapshot   `db:"buyer" json:"buyer"`
	Items            LineItems       `db:"items" json:"items"`
	DocumentDiscount decimal.Decimal `db:"document_discount" json:"document_discount"`
	GrandTotal       decimal.Decimal `db:"grand_total" json:"grand_total"`
	Notes            string          `db:"notes" json:"notes"`
	PDFKey           *string         `db:"pdf_key" json:"pdf_key,omitempty"`
	FinalizedAt      *time.Time      `db:"finalized_at" json:"finalized_at,omitempty"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// Compute rebuilds the invoice amounts from the stored inputs.
func (inv *Invoice) Compute() (*gst.Invoice, error) {
	out, err := gst.Build(gst.Party(inv.Seller), gst.Party(inv.Buyer), inv.Items, inv.DocumentDiscount)
	if err != nil {
		return nil, err
	}
	if inv.Status == InvoiceStatusFinal {
		out.IsDraft = false
		if inv.InvoiceNumber != nil {
			out.Number = *inv.InvoiceNumber
		}
	}
	return out, nil
}

// IsFinal reports whether a number has been assigned.
func (inv *Invoice) IsFinal() bool {
	return inv.Status == InvoiceStatusFinal
}

// RowError describes a problem with one row of an imported file. Row is
// 1-based and counts the header row.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportResult summarises a storefront import.
type ImportResult struct {
	Kind        ImportKind `json:"kind"`
	FileName    string     `json:"file_name"`
	TotalRows   int        `json:"total_rows"`
	Imported    int        `json:"imported"`
	Duplicates  int        `json:"duplicates"`
	SkippedRows int        `json:"skipped_rows"`
	Errors      []RowError `json:"errors"`
}
