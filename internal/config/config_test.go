package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	setDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViperDefaults(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]any{
		"JWT_ACCESS_SECRET":  "access",
		"JWT_REFRESH_SECRET": "refresh",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWT.VerificationTTL)
	assert.Equal(t, []string{"нет"}, cfg.Roster.TeacherSkipEmails)
	assert.Equal(t, "0 0 3 * * *", cfg.Roster.Schedule)
	assert.False(t, cfg.Mail.Enabled)
	assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=school sslmode=disable", cfg.Database.DSN())
}

func TestFromViperOverrides(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]any{
		"JWT_ACCESS_SECRET":        "access",
		"JWT_REFRESH_SECRET":       "refresh",
		"FRONTEND_URL":             "https://school.example/",
		"TEACHER_FEED_SKIP_EMAILS": "нет, none ,",
		"LEGACY_DB_USER":           "reader",
		"LEGACY_DB_PASSWORD":       "secret",
		"LEGACY_DB_HOST":           "mysql",
		"LEGACY_DB_NAME":           "legacy",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://school.example", cfg.FrontendURL)
	assert.Equal(t, []string{"нет", "none"}, cfg.Roster.TeacherSkipEmails)
	assert.Equal(t, "reader:secret@tcp(mysql:3306)/legacy?charset=utf8mb4&parseTime=true", cfg.Legacy.DSN())
}

func TestFromViperRequiresDistinctSecrets(t *testing.T) {
	_, err := fromViper(newTestViper(nil))
	assert.Error(t, err)

	_, err = fromViper(newTestViper(map[string]any{
		"JWT_ACCESS_SECRET":  "same",
		"JWT_REFRESH_SECRET": "same",
	}))
	assert.Error(t, err)
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger := NewLogger(LoggingConfig{Level: "nonsense", Format: "json"})
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	logger = NewLogger(LoggingConfig{Level: "DEBUG", Format: "console"})
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}
