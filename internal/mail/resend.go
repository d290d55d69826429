package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// ResendSender отправляет письма через API Resend.
type ResendSender struct {
	client *resend.Client
	from   string
	logger zerolog.Logger
}

func NewResendSender(apiKey, from string, logger zerolog.Logger) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		logger: logger,
	}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		var rateLimitErr *resend.RateLimitError
		if errors.As(err, &rateLimitErr) {
			s.logger.Warn().
				Str("limit", rateLimitErr.Limit).
				Str("remaining", rateLimitErr.Remaining).
				Str("reset", rateLimitErr.Reset).
				Msg("превышен лимит отправки resend")
			return fmt.Errorf("превышен лимит отправки (сброс через %s с): %w", rateLimitErr.Reset, err)
		}
		return fmt.Errorf("ошибка API resend: %w", err)
	}

	s.logger.Debug().Str("email_id", sent.Id).Str("to", msg.To).Msg("письмо отправлено через resend")
	return nil
}
