package mail

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"school_achievements/internal/config"
	"school_achievements/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
	done chan struct{}
}

func (f *fakeSender) Send(_ context.Context, msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	if f.done != nil {
		close(f.done)
	}
	return f.err
}

type memoryLogStore struct {
	mu      sync.Mutex
	entries []models.EmailLog
}

func (m *memoryLogStore) SaveEmailLog(_ context.Context, entry *models.EmailLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
	return nil
}

func newTestService(sender Sender, logs LogStore) *Service {
	cfg := config.Config{
		SchoolName:  "Школа 1298",
		FrontendURL: "https://portal.example",
		Mail:        config.MailConfig{SendTimeout: time.Second},
	}
	svc := NewService(sender, logs, cfg, zerolog.Nop())
	svc.NowFunc = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestSendVerificationRendersAndLogs(t *testing.T) {
	sender := &fakeSender{}
	logs := &memoryLogStore{}
	svc := newTestService(sender, logs)

	err := svc.Send(context.Background(), "ivanov@school.ru", TemplateVerification, svc.VerificationData("Иванов Иван", "tok/en"))
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "ivanov@school.ru", msg.To)
	assert.Equal(t, "Подтверждение email | Школа 1298", msg.Subject)
	assert.Contains(t, msg.Text, "https://portal.example/verify-email?token=tok%2Fen")
	assert.Contains(t, msg.HTML, "Иванов Иван")
	assert.Contains(t, msg.HTML, "2025")

	require.Len(t, logs.entries, 1)
	assert.Equal(t, models.EmailStatusSent, logs.entries[0].Status)
	assert.Equal(t, TemplateVerification, logs.entries[0].TemplateName)
}

func TestSendFailureIsLogged(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	logs := &memoryLogStore{}
	svc := newTestService(sender, logs)

	err := svc.Send(context.Background(), "ivanov@school.ru", TemplateWelcome, svc.WelcomeData("Иван"))
	assert.Error(t, err)

	require.Len(t, logs.entries, 1)
	assert.Equal(t, models.EmailStatusFailed, logs.entries[0].Status)
	assert.Equal(t, "smtp down", logs.entries[0].ErrorMessage)
}

func TestSendRejectsInvalidRecipient(t *testing.T) {
	sender := &fakeSender{}
	logs := &memoryLogStore{}
	svc := newTestService(sender, logs)

	err := svc.Send(context.Background(), "not-an-email", TemplateWelcome, svc.WelcomeData("Иван"))
	assert.Error(t, err)
	assert.Empty(t, sender.sent)
	require.Len(t, logs.entries, 1)
	assert.Equal(t, models.EmailStatusFailed, logs.entries[0].Status)
}

func TestSendAsyncDelivers(t *testing.T) {
	sender := &fakeSender{done: make(chan struct{})}
	svc := newTestService(sender, &memoryLogStore{})

	svc.SendAsync("petrov@school.ru", TemplatePasswordReset, svc.PasswordResetData("Петров", "Abc123!@#xyz"))

	select {
	case <-sender.done:
	case <-time.After(2 * time.Second):
		t.Fatal("письмо не было отправлено")
	}
	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Contains(t, sender.sent[0].Text, "Abc123!@#xyz")
}

func TestSMTPBuildMessage(t *testing.T) {
	s := NewSMTPSender(config.MailConfig{From: "noreply@school.ru", FromName: "Школа"})
	body, err := s.buildMessage(Message{To: "a@b.ru", Subject: "Тема", Text: "текст", HTML: "<p>html</p>"})
	require.NoError(t, err)

	raw := string(body)
	assert.Contains(t, raw, "To: a@b.ru\r\n")
	assert.Contains(t, raw, "<noreply@school.ru>")
	assert.Contains(t, raw, "multipart/alternative")
	assert.Equal(t, 1, strings.Count(raw, "text/plain; charset=UTF-8"))
	assert.Equal(t, 1, strings.Count(raw, "text/html; charset=UTF-8"))
}

func TestNewSenderSelection(t *testing.T) {
	logger := zerolog.Nop()
	assert.IsType(t, LogSender{}, NewSender(config.MailConfig{}, logger))
	assert.IsType(t, &ResendSender{}, NewSender(config.MailConfig{Enabled: true, ResendAPIKey: "re_x"}, logger))
	assert.IsType(t, &SMTPSender{}, NewSender(config.MailConfig{Enabled: true}, logger))
}

func TestLogSenderOmitsBody(t *testing.T) {
	var buf bytes.Buffer
	sender := LogSender{Logger: zerolog.New(&buf).Level(zerolog.DebugLevel)}

	err := sender.Send(context.Background(), Message{
		To:       "student@school.ru",
		Subject:  "Новый пароль",
		Template: "password_reset",
		Text:     "Ваш новый пароль: Xy7!secret",
		HTML:     "<p>Xy7!secret</p>",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "student@school.ru")
	assert.Contains(t, out, "Новый пароль")
	assert.NotContains(t, out, "Xy7!secret")
}
