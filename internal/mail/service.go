package mail

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"school_achievements/internal/config"
	"school_achievements/internal/metrics"
	"school_achievements/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// LogStore сохраняет записи журнала отправки писем.
type LogStore interface {
	SaveEmailLog(ctx context.Context, entry *models.EmailLog) error
}

// GormLogStore пишет журнал в таблицу email_logs.
type GormLogStore struct {
	DB *gorm.DB
}

func (s GormLogStore) SaveEmailLog(ctx context.Context, entry *models.EmailLog) error {
	return s.DB.WithContext(ctx).Create(entry).Error
}

// Service рендерит письма, отправляет их и фиксирует результат в журнале.
type Service struct {
	sender      Sender
	logs        LogStore
	logger      zerolog.Logger
	schoolName  string
	frontendURL string
	timeout     time.Duration

	// NowFunc подменяется в тестах.
	NowFunc func() time.Time
}

// NewSender выбирает транспорт по настройкам: Resend, SMTP или только лог.
func NewSender(cfg config.MailConfig, logger zerolog.Logger) Sender {
	switch {
	case !cfg.Enabled:
		return LogSender{Logger: logger}
	case cfg.ResendAPIKey != "":
		return NewResendSender(cfg.ResendAPIKey, cfg.From, logger)
	default:
		return NewSMTPSender(cfg)
	}
}

func NewService(sender Sender, logs LogStore, cfg config.Config, logger zerolog.Logger) *Service {
	timeout := cfg.Mail.SendTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{
		sender:      sender,
		logs:        logs,
		logger:      logger.With().Str("component", "mail").Logger(),
		schoolName:  cfg.SchoolName,
		frontendURL: cfg.FrontendURL,
		timeout:     timeout,
		NowFunc:     time.Now,
	}
}

// Send рендерит шаблон и отправляет письмо. Результат пишется в журнал в любом случае.
func (s *Service) Send(ctx context.Context, to, template string, data TemplateData) error {
	data.SchoolName = s.schoolName
	data.Year = s.NowFunc().Year()

	subject := subjects[template]
	if s.schoolName != "" {
		subject = fmt.Sprintf("%s | %s", subject, s.schoolName)
	}

	err := validateEmailAddress(to)
	if err == nil {
		var text, html string
		text, html, err = render(template, data)
		if err == nil {
			err = s.sender.Send(ctx, Message{To: to, Subject: subject, Template: template, Text: text, HTML: html})
		}
	}

	entry := &models.EmailLog{
		Email:        to,
		Subject:      subject,
		TemplateName: template,
		Status:       models.EmailStatusSent,
		SentAt:       s.NowFunc(),
	}
	if err != nil {
		entry.Status = models.EmailStatusFailed
		entry.ErrorMessage = err.Error()
	}
	metrics.EmailsSent.WithLabelValues(template, entry.Status).Inc()

	if logErr := s.logs.SaveEmailLog(ctx, entry); logErr != nil {
		s.logger.Error().Err(logErr).Str("to", to).Msg("ошибка записи журнала писем")
	}

	if err != nil {
		s.logger.Error().Err(err).Str("to", to).Str("template", template).Msg("ошибка отправки письма")
		return err
	}
	s.logger.Info().Str("to", to).Str("template", template).Msg("письмо отправлено")
	return nil
}

// SendAsync отправляет письмо в фоне, не блокируя обработчик запроса.
func (s *Service) SendAsync(to, template string, data TemplateData) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		_ = s.Send(ctx, to, template, data)
	}()
}

func (s *Service) VerificationData(userName, token string) TemplateData {
	return TemplateData{
		UserName: userName,
		URL:      s.frontendURL + "/verify-email?token=" + url.QueryEscape(token),
	}
}

func (s *Service) WelcomeData(userName string) TemplateData {
	return TemplateData{UserName: userName, URL: s.frontendURL + "/login"}
}

func (s *Service) PasswordResetData(userName, password string) TemplateData {
	return TemplateData{UserName: userName, Password: password, URL: s.frontendURL + "/login"}
}
