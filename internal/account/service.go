// Package account реализует регистрацию, подтверждение email, вход и сброс пароля.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"school_achievements/internal/auth"
	"school_achievements/internal/mail"
	"school_achievements/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrNotInRoster           = errors.New("пользователь не найден в базе школы")
	ErrAlreadyRegistered     = errors.New("пользователь уже зарегистрирован")
	ErrInvalidVerification   = errors.New("неверный токен подтверждения")
	ErrVerificationExpired   = errors.New("срок действия токена подтверждения истек")
	ErrAlreadyVerified       = errors.New("email уже подтвержден")
	ErrInvalidCredentials    = errors.New("неверный email или пароль")
	ErrRegistrationRequired  = errors.New("необходимо пройти регистрацию")
	ErrNotVerified           = errors.New("email не подтвержден")
	ErrInactive              = errors.New("аккаунт неактивен")
	ErrResetUnavailableToday = errors.New("сброс пароля сегодня уже выполнялся")
	ErrUserNotFound          = errors.New("пользователь не найден")
)

const resetPasswordLength = 12

// GoogleVerifier проверяет токен Google и возвращает профиль.
type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (*auth.GoogleUser, error)
}

type Service struct {
	db              *gorm.DB
	tokens          *auth.TokenManager
	mailer          *mail.Service
	google          GoogleVerifier
	verificationTTL time.Duration
	logger          zerolog.Logger

	// NowFunc подменяется в тестах.
	NowFunc func() time.Time
}

func NewService(db *gorm.DB, tokens *auth.TokenManager, mailer *mail.Service, google GoogleVerifier, verificationTTL time.Duration, logger zerolog.Logger) *Service {
	return &Service{
		db:              db,
		tokens:          tokens,
		mailer:          mailer,
		google:          google,
		verificationTTL: verificationTTL,
		logger:          logger.With().Str("component", "account").Logger(),
		NowFunc:         time.Now,
	}
}

func (s *Service) findByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Roles").
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Register задает пароль пользователю, уже загруженному синхронизацией, и отправляет письмо подтверждения.
func (s *Service) Register(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.findByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrNotInRoster
	}
	if err != nil {
		return nil, err
	}
	if !user.RequiresPassword {
		return nil, ErrAlreadyRegistered
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	token, err := auth.GenerateVerificationToken()
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токена: %w", err)
	}
	now := s.NowFunc()

	user.PasswordHash = &hash
	user.VerificationToken = &token
	user.VerificationSentAt = &now
	if err := s.db.WithContext(ctx).Model(user).Updates(map[string]any{
		"password_hash":        hash,
		"verification_token":   token,
		"verification_sent_at": now,
	}).Error; err != nil {
		return nil, fmt.Errorf("ошибка сохранения пользователя: %w", err)
	}

	s.mailer.SendAsync(user.Email, mail.TemplateVerification, s.mailer.VerificationData(user.DisplayName, token))
	s.logger.Info().Uint("user_id", user.ID).Msg("регистрация, отправлено письмо подтверждения")
	return user, nil
}

// VerifyEmail активирует пользователя по токену и сразу выпускает токены входа.
func (s *Service) VerifyEmail(ctx context.Context, token string) (*models.User, auth.TokenPair, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Roles").
		Where("verification_token = ? AND is_verified = ?", token, false).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, auth.TokenPair{}, ErrInvalidVerification
	}
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	now := s.NowFunc()
	if user.VerificationSentAt == nil || now.Sub(*user.VerificationSentAt) > s.verificationTTL {
		return nil, auth.TokenPair{}, ErrVerificationExpired
	}

	if err := s.db.WithContext(ctx).Model(&user).Updates(map[string]any{
		"is_active":          true,
		"is_verified":        true,
		"requires_password":  false,
		"email_verified_at":  now,
		"verification_token": nil,
	}).Error; err != nil {
		return nil, auth.TokenPair{}, fmt.Errorf("ошибка активации пользователя: %w", err)
	}
	user.IsActive, user.IsVerified, user.RequiresPassword = true, true, false
	user.EmailVerifiedAt = &now
	user.VerificationToken = nil

	pair, err := s.tokens.IssuePair(user.ID, user.Email)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	s.mailer.SendAsync(user.Email, mail.TemplateWelcome, s.mailer.WelcomeData(user.DisplayName))
	return &user, pair, nil
}

// ResendVerification выпускает новый токен подтверждения и отправляет письмо повторно.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}
	if user.PasswordHash == nil {
		return ErrRegistrationRequired
	}

	token, err := auth.GenerateVerificationToken()
	if err != nil {
		return err
	}
	now := s.NowFunc()
	if err := s.db.WithContext(ctx).Model(user).Updates(map[string]any{
		"verification_token":   token,
		"verification_sent_at": now,
	}).Error; err != nil {
		return err
	}

	s.mailer.SendAsync(user.Email, mail.TemplateVerification, s.mailer.VerificationData(user.DisplayName, token))
	return nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*models.User, auth.TokenPair, error) {
	user, err := s.findByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, auth.TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	if user.RequiresPassword {
		return nil, auth.TokenPair{}, ErrRegistrationRequired
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, auth.TokenPair{}, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, auth.TokenPair{}, ErrNotVerified
	}
	if !user.IsActive || user.Archived {
		return nil, auth.TokenPair{}, ErrInactive
	}

	return s.startSession(ctx, user)
}

// Refresh проверяет refresh токен и выпускает новую пару.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*models.User, auth.TokenPair, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	var user models.User
	err = s.db.WithContext(ctx).Preload("Roles").
		Where("id = ? AND email = ?", claims.UserID, claims.Subject).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, auth.TokenPair{}, ErrUserNotFound
	}
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	if !user.IsActive || user.Archived {
		return nil, auth.TokenPair{}, ErrInactive
	}

	pair, err := s.tokens.IssuePair(user.ID, user.Email)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	return &user, pair, nil
}

// ForgotPassword генерирует новый пароль и отправляет его на почту. Не чаще раза в сутки.
// Для неизвестных и неактивных пользователей возвращает nil, чтобы не раскрывать наличие аккаунта.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.findByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !user.IsActive || !user.IsVerified || user.RequiresPassword || user.Archived {
		return nil
	}

	now := s.NowFunc()
	if user.PasswordResetAt != nil && sameDay(*user.PasswordResetAt, now) {
		return ErrResetUnavailableToday
	}

	password, err := auth.GeneratePassword(resetPasswordLength)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(user).Updates(map[string]any{
		"password_hash":     hash,
		"password_reset_at": now,
	}).Error; err != nil {
		return fmt.Errorf("ошибка сохранения пароля: %w", err)
	}

	s.mailer.SendAsync(user.Email, mail.TemplatePasswordReset, s.mailer.PasswordResetData(user.DisplayName, password))
	s.logger.Info().Uint("user_id", user.ID).Msg("пароль сброшен")
	return nil
}

// GoogleLogin входит по токену Google. Пользователь должен уже существовать.
func (s *Service) GoogleLogin(ctx context.Context, token string) (*models.User, auth.TokenPair, error) {
	profile, err := s.google.Verify(ctx, token)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	user, err := s.findByEmail(ctx, profile.Email)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	if !user.IsActive || user.Archived {
		return nil, auth.TokenPair{}, ErrInactive
	}

	return s.startSession(ctx, user)
}

func (s *Service) startSession(ctx context.Context, user *models.User) (*models.User, auth.TokenPair, error) {
	now := s.NowFunc()
	if err := s.db.WithContext(ctx).Model(user).UpdateColumn("last_login_at", now).Error; err != nil {
		return nil, auth.TokenPair{}, fmt.Errorf("ошибка обновления времени входа: %w", err)
	}
	user.LastLoginAt = &now

	pair, err := s.tokens.IssuePair(user.ID, user.Email)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	return user, pair, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
