package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"taxmitra/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendReturnReport(ctx context.Context, mail port.ReturnReportMail) error {
	subject := fmt.Sprintf("%s return for %s", mail.ReturnType, mail.Period)
	htmlBody := buildReturnReportHTML(mail)
	textBody := buildReturnReportText(mail)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{mail.To},
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

func buildReturnReportText(mail port.ReturnReportMail) string {
	text := fmt.Sprintf(`Your %s return for %s has been generated.

Total invoices: %d
Taxable value: %.2f
Total tax: %.2f
CGST: %.2f
SGST: %.2f
IGST: %.2f
`,
		mail.ReturnType, mail.Period,
		mail.Summary.TotalInvoices, mail.Summary.TotalTaxableValue, mail.Summary.TotalTaxAmount,
		mail.Summary.CGST, mail.Summary.SGST, mail.Summary.IGST)

	if mail.DownloadURL != "" {
		text += fmt.Sprintf("\nDownload the workbook:\n%s\n", mail.DownloadURL)
	}
	text += "\nTaxMitra Reports"
	return text
}

func buildReturnReportHTML(mail port.ReturnReportMail) string {
	download := ""
	if mail.DownloadURL != "" {
		download = fmt.Sprintf(`<p><a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Download Workbook</a></p>`, mail.DownloadURL)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">%s return for %s</h2>
  <p>Your return has been generated. Summary of the filing period:</p>
  <table style="border-collapse: collapse; width: 100%%;">
    <tr><td style="padding: 6px; border-bottom: 1px solid #eee;">Total invoices</td><td style="padding: 6px; border-bottom: 1px solid #eee; text-align: right;">%d</td></tr>
    <tr><td style="padding: 6px; border-bottom: 1px solid #eee;">Taxable value</td><td style="padding: 6px; border-bottom: 1px solid #eee; text-align: right;">%.2f</td></tr>
    <tr><td style="padding: 6px; border-bottom: 1px solid #eee;">Total tax</td><td style="padding: 6px; border-bottom: 1px solid #eee; text-align: right;">%.2f</td></tr>
    <tr><td style="padding: 6px; border-bottom: 1px solid #eee;">CGST</td><td style="padding: 6px; border-bottom: 1px solid #eee; text-align: right;">%.2f</td></tr>
    <tr><td style="padding: 6px; border-bottom: 1px solid #eee;">SGST</td><td style="padding: 6px; border-bottom: 1px solid #eee; text-align: right;">%.2f</td></tr>
    <tr><td style="padding: 6px; border-bottom: 1px solid #eee;">IGST</td><td style="padding: 6px; border-bottom: 1px solid #eee; text-align: right;">%.2f</td></tr>
  </table>
  %s
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">TaxMitra - GST Returns Platform</p>
</body>
</html>`,
		mail.ReturnType, mail.Period,
		mail.Summary.TotalInvoices, mail.Summary.TotalTaxableValue, mail.Summary.TotalTaxAmount,
		mail.Summary.CGST, mail.Summary.SGST, mail.Summary.IGST,
		download)
}
