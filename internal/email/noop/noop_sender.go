package noop

import (
	"context"

	"github.com/rs/zerolog/log"

	"taxmitra/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs return mails instead of
// sending them.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendReturnReport(_ context.Context, mail port.ReturnReportMail) error {
	log.Info().
		Str("to", mail.To).
		Str("return_type", string(mail.ReturnType)).
		Str("period", mail.Period).
		Float64("total_tax", mail.Summary.TotalTaxAmount).
		Str("download_url", mail.DownloadURL).
		Msg("noop email: return report")
	return nil
}
