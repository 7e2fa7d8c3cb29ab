package port

import (
	"context"

	"taxmitra/internal/domain"
)

// ReturnReportMail carries the figures of a generated return for delivery.
type ReturnReportMail struct {
	To          string
	ReturnType  domain.ReturnType
	Period      string
	Summary     domain.ReturnSummary
	DownloadURL string
}

// EmailSender defines the contract for sending generated-return emails.
type EmailSender interface {
	SendReturnReport(ctx context.Context, mail ReturnReportMail) error
}
