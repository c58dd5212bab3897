package ses

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"gstinvoice/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(ctx context.Context, region, fromAddress, fromName string) (port.EmailSender, error) {
	if fromAddress == "" {
		return nil, fmt.Errorf("ses: from address is required")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendInvoiceEmail(ctx context.Context, msg port.InvoiceEmail) error {
	subject := invoiceSubject(msg)
	htmlBody, err := buildInvoiceHTML(msg)
	if err != nil {
		return err
	}
	textBody := buildInvoiceText(msg)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err = s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{msg.ToEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func invoiceSubject(msg port.InvoiceEmail) string {
	return fmt.Sprintf("Invoice %s from %s", msg.InvoiceNumber, msg.SellerName)
}

func buildInvoiceText(msg port.InvoiceEmail) string {
	return fmt.Sprintf("Hi %s,\n\n%s has issued invoice %s for %s.\n\nDownload it here:\n%s\n\nThe link expires in 24 hours.\n",
		greetingName(msg.ToName), msg.SellerName, msg.InvoiceNumber, msg.GrandTotal, msg.DownloadURL)
}

var invoiceHTML = template.Must(template.New("invoice_email").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice {{.InvoiceNumber}}</h2>
  <p>Hi {{.Name}},</p>
  <p>{{.SellerName}} has issued invoice <strong>{{.InvoiceNumber}}</strong> for <strong>{{.GrandTotal}}</strong>.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="{{.DownloadURL}}" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Download Invoice</a>
  </p>
  <p style="color: #999; font-size: 12px;">This link expires in 24 hours.</p>
</body>
</html>`))

func buildInvoiceHTML(msg port.InvoiceEmail) (string, error) {
	var buf bytes.Buffer
	err := invoiceHTML.Execute(&buf, struct {
		port.InvoiceEmail
		Name string
	}{msg, greetingName(msg.ToName)})
	if err != nil {
		return "", fmt.Errorf("rendering invoice email: %w", err)
	}
	return buf.String(), nil
}

func greetingName(name string) string {
	if name == "" {
		return "there"
	}
	return name
}
