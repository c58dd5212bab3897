package domain

import (
	"encoding/json"

	"gstinvoice/internal/gst"
)

// Monetary fields go out as two-decimal strings. Entered values keep any
// extra precision they were stored with.

type invoiceAlias Invoice

func (inv Invoice) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		invoiceAlias
		DocumentDiscount string `json:"document_discount"`
		GrandTotal       string `json:"grand_total"`
	}{
		invoiceAlias:     invoiceAlias(inv),
		DocumentDiscount: gst.FixedInput(inv.DocumentDiscount),
		GrandTotal:       gst.Fixed(inv.GrandTotal),
	})
}

type orderAlias Order

func (o Order) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		orderAlias
		DocumentDiscount string `json:"document_discount"`
	}{
		orderAlias:       orderAlias(o),
		DocumentDiscount: gst.FixedInput(o.DocumentDiscount),
	})
}

type orderItemAlias OrderItem

func (i OrderItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		orderItemAlias
		UnitPrice string `json:"unit_price"`
	}{
		orderItemAlias: orderItemAlias(i),
		UnitPrice:      gst.FixedInput(i.UnitPrice),
	})
}

type productAlias Product

func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		productAlias
		Price string `json:"price"`
	}{
		productAlias: productAlias(p),
		Price:        gst.FixedInput(p.Price),
	})
}
