package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"school_achievements/internal/auth"
	"school_achievements/internal/config"
	"school_achievements/internal/mail"
	"school_achievements/internal/models"
	"school_achievements/internal/storage/storagetest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type discardLogs struct{}

func (discardLogs) SaveEmailLog(context.Context, *models.EmailLog) error { return nil }

type stubGoogle struct {
	user *auth.GoogleUser
	err  error
}

func (g stubGoogle) Verify(context.Context, string) (*auth.GoogleUser, error) {
	return g.user, g.err
}

type fixture struct {
	db  *gorm.DB
	svc *Service
	now time.Time
}

func newFixture(t *testing.T, google GoogleVerifier) *fixture {
	db := storagetest.NewPostgres(t)
	cfg := config.Config{SchoolName: "Школа", FrontendURL: "http://front"}
	mailer := mail.NewService(mail.LogSender{Logger: zerolog.Nop()}, discardLogs{}, cfg, zerolog.Nop())
	tokens := auth.NewTokenManager(config.JWTConfig{
		AccessSecret:  "a",
		RefreshSecret: "r",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
	f := &fixture{db: db, now: time.Now()}
	f.svc = NewService(db, tokens, mailer, google, 24*time.Hour, zerolog.Nop())
	f.svc.NowFunc = func() time.Time { return f.now }
	return f
}

func (f *fixture) syncedUser(t *testing.T, email string) *models.User {
	var role models.Role
	require.NoError(t, f.db.Where("name = ?", models.RoleTeacher).First(&role).Error)
	u := &models.User{
		ExternalID:       "ext-" + email,
		Email:            email,
		DisplayName:      "Иванов Иван",
		RequiresPassword: true,
		Roles:            []models.Role{role},
	}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func TestRegisterVerifyLoginFlow(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.syncedUser(t, "ivanov@school.ru")

	_, err := f.svc.Register(ctx, "unknown@school.ru", "password1")
	assert.ErrorIs(t, err, ErrNotInRoster)

	user, err := f.svc.Register(ctx, "Ivanov@School.ru", "password1")
	require.NoError(t, err)
	require.NotNil(t, user.VerificationToken)

	_, _, err = f.svc.Login(ctx, "ivanov@school.ru", "password1")
	assert.ErrorIs(t, err, ErrRegistrationRequired)

	_, _, err = f.svc.VerifyEmail(ctx, "bogus")
	assert.ErrorIs(t, err, ErrInvalidVerification)

	verified, pair, err := f.svc.VerifyEmail(ctx, *user.VerificationToken)
	require.NoError(t, err)
	assert.True(t, verified.IsActive)
	assert.True(t, verified.IsVerified)
	assert.NotEmpty(t, pair.AccessToken)

	_, err = f.svc.Register(ctx, "ivanov@school.ru", "password2")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	_, _, err = f.svc.Login(ctx, "ivanov@school.ru", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	logged, pair, err := f.svc.Login(ctx, "ivanov@school.ru", "password1")
	require.NoError(t, err)
	require.NotNil(t, logged.LastLoginAt)
	assert.Equal(t, []string{models.RoleTeacher}, logged.RoleNames())

	refreshed, newPair, err := f.svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, logged.ID, refreshed.ID)
	assert.NotEmpty(t, newPair.RefreshToken)

	_, _, err = f.svc.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerificationExpires(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.syncedUser(t, "petrov@school.ru")

	user, err := f.svc.Register(ctx, "petrov@school.ru", "password1")
	require.NoError(t, err)

	f.now = f.now.Add(25 * time.Hour)
	_, _, err = f.svc.VerifyEmail(ctx, *user.VerificationToken)
	assert.ErrorIs(t, err, ErrVerificationExpired)

	require.NoError(t, f.svc.ResendVerification(ctx, "petrov@school.ru"))
	var reloaded models.User
	require.NoError(t, f.db.First(&reloaded, user.ID).Error)
	require.NotNil(t, reloaded.VerificationToken)
	assert.NotEqual(t, *user.VerificationToken, *reloaded.VerificationToken)

	_, _, err = f.svc.VerifyEmail(ctx, *reloaded.VerificationToken)
	assert.NoError(t, err)
	assert.ErrorIs(t, f.svc.ResendVerification(ctx, "petrov@school.ru"), ErrAlreadyVerified)
}

func TestLoginRejectsInactive(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.syncedUser(t, "sidorov@school.ru")

	user, err := f.svc.Register(ctx, "sidorov@school.ru", "password1")
	require.NoError(t, err)
	_, _, err = f.svc.VerifyEmail(ctx, *user.VerificationToken)
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&models.User{}).Where("id = ?", user.ID).Update("archived", true).Error)
	_, _, err = f.svc.Login(ctx, "sidorov@school.ru", "password1")
	assert.ErrorIs(t, err, ErrInactive)
}

func TestForgotPasswordOncePerDay(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.syncedUser(t, "reset@school.ru")

	// незарегистрированный пользователь получает нейтральный ответ
	assert.NoError(t, f.svc.ForgotPassword(ctx, "reset@school.ru"))
	assert.NoError(t, f.svc.ForgotPassword(ctx, "nobody@school.ru"))

	user, err := f.svc.Register(ctx, "reset@school.ru", "password1")
	require.NoError(t, err)
	_, _, err = f.svc.VerifyEmail(ctx, *user.VerificationToken)
	require.NoError(t, err)

	require.NoError(t, f.svc.ForgotPassword(ctx, "reset@school.ru"))
	assert.ErrorIs(t, f.svc.ForgotPassword(ctx, "reset@school.ru"), ErrResetUnavailableToday)

	_, _, err = f.svc.Login(ctx, "reset@school.ru", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	f.now = f.now.Add(48 * time.Hour)
	assert.NoError(t, f.svc.ForgotPassword(ctx, "reset@school.ru"))
}

func TestGoogleLogin(t *testing.T) {
	google := &stubGoogle{user: &auth.GoogleUser{Email: "google@school.ru"}}
	f := newFixture(t, google)
	ctx := context.Background()
	u := f.syncedUser(t, "google@school.ru")

	_, _, err := f.svc.GoogleLogin(ctx, "token")
	assert.ErrorIs(t, err, ErrInactive)

	require.NoError(t, f.db.Model(u).Update("is_active", true).Error)
	user, pair, err := f.svc.GoogleLogin(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, u.ID, user.ID)
	assert.NotEmpty(t, pair.AccessToken)

	google.user = &auth.GoogleUser{Email: "stranger@gmail.com"}
	_, _, err = f.svc.GoogleLogin(ctx, "token")
	assert.ErrorIs(t, err, ErrUserNotFound)

	google.err = errors.New("bad token")
	_, _, err = f.svc.GoogleLogin(ctx, "token")
	assert.Error(t, err)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 1, 10, 1, 0, 0, 0, time.Local)
	assert.True(t, sameDay(a, a.Add(20*time.Hour)))
	assert.False(t, sameDay(a, a.Add(24*time.Hour)))
}
