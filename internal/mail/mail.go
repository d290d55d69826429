// Package mail отправляет письма пользователям и ведет журнал отправок.
package mail

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/rs/zerolog"
)

// Message это готовое к отправке письмо.
type Message struct {
	To       string
	Subject  string
	Template string
	Text     string
	HTML     string
}

// Sender доставляет письмо через конкретный транспорт.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender пишет в лог только получателя и тему, текст письма может содержать пароль.
// Используется, когда отправка отключена.
type LogSender struct {
	Logger zerolog.Logger
}

func (s LogSender) Send(_ context.Context, msg Message) error {
	s.Logger.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("template", msg.Template).
		Msg("отправка писем отключена, письмо записано в лог")
	return nil
}

func validateEmailAddress(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("некорректный email: %w", err)
	}
	if strings.ContainsAny(addr.Address, "\r\n") {
		return fmt.Errorf("некорректный email: содержит перевод строки")
	}
	return nil
}
