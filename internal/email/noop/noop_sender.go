package noop

import (
	"context"

	"go.uber.org/zap"

	"gstinvoice/internal/port"
)

type noopSender struct {
	log *zap.Logger
}

// NewNoopSender creates an EmailSender that only logs what would be sent.
func NewNoopSender(log *zap.Logger) port.EmailSender {
	return &noopSender{log: log.Named("email.noop")}
}

func (s *noopSender) SendInvoiceEmail(_ context.Context, msg port.InvoiceEmail) error {
	s.log.Info("invoice email skipped",
		zap.String("to", msg.ToEmail),
		zap.String("invoice_number", msg.InvoiceNumber),
		zap.String("grand_total", msg.GrandTotal),
		zap.String("download_url", msg.DownloadURL),
	)
	return nil
}
