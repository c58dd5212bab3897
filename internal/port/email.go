package port

import "context"

// InvoiceEmail carries what the buyer needs to fetch a finalized invoice.
type InvoiceEmail struct {
	ToEmail       string
	ToName        string
	SellerName    string
	InvoiceNumber string
	GrandTotal    string
	DownloadURL   string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendInvoiceEmail(ctx context.Context, msg InvoiceEmail) error
}
