package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config собирает все настройки сервиса.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Legacy   LegacyConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Mail     MailConfig
	Roster   RosterConfig
	Logging  LoggingConfig
	// GoogleClientID используется для проверки токенов входа через Google.
	GoogleClientID string
	// FrontendURL подставляется в ссылки из писем.
	FrontendURL string
	// SchoolName и SchoolDomain используются в письмах и при генерации email учеников.
	SchoolName   string
	SchoolDomain string
}

type ServerConfig struct {
	Addr        string
	Mode        string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN возвращает строку подключения в формате драйвера postgres.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// LegacyConfig описывает старую школьную базу MySQL (только чтение).
type LegacyConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

func (l LegacyConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true",
		l.User, l.Password, l.Host, l.Port, l.Name)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret    string
	RefreshSecret   string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	VerificationTTL time.Duration
}

type MailConfig struct {
	Enabled      bool
	From         string
	FromName     string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPUseTLS   bool
	ResendAPIKey string
	SendTimeout  time.Duration
}

type RosterConfig struct {
	TeacherFeedURL     string
	TeacherImageURL    string
	TeacherSkipEmails  []string
	TeacherFeedTimeout time.Duration
	TeacherCacheTTL    time.Duration
	ScheduleEnabled    bool
	Schedule           string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_ADDR", ":8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("CORS_ORIGINS", "*")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "school")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("LEGACY_DB_HOST", "localhost")
	v.SetDefault("LEGACY_DB_PORT", "3306")
	v.SetDefault("LEGACY_DB_USER", "root")
	v.SetDefault("LEGACY_DB_PASSWORD", "")
	v.SetDefault("LEGACY_DB_NAME", "school")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_ACCESS_SECRET", "")
	v.SetDefault("JWT_REFRESH_SECRET", "")
	v.SetDefault("JWT_ACCESS_TTL", 30*time.Minute)
	v.SetDefault("JWT_REFRESH_TTL", 30*24*time.Hour)
	v.SetDefault("VERIFICATION_TTL", 24*time.Hour)

	v.SetDefault("MAIL_ENABLED", false)
	v.SetDefault("MAIL_FROM", "noreply@localhost")
	v.SetDefault("MAIL_FROM_NAME", "")
	v.SetDefault("SMTP_HOST", "localhost")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_USE_TLS", true)
	v.SetDefault("RESEND_API_KEY", "")
	v.SetDefault("MAIL_SEND_TIMEOUT", 30*time.Second)

	v.SetDefault("TEACHER_FEED_URL", "https://school1298.ru/portal/workers/workersPS-no.json")
	v.SetDefault("TEACHER_IMAGE_BASE_URL", "https://school1298.ru/portal/workers/image/teachers/")
	v.SetDefault("TEACHER_FEED_SKIP_EMAILS", "нет")
	v.SetDefault("TEACHER_FEED_TIMEOUT", 30*time.Second)
	v.SetDefault("TEACHER_FEED_CACHE_TTL", 10*time.Minute)
	v.SetDefault("SYNC_SCHEDULE_ENABLED", false)
	v.SetDefault("SYNC_SCHEDULE", "0 0 3 * * *")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("SCHOOL_NAME", "Школа")
	v.SetDefault("SCHOOL_DOMAIN", "school.local")
}

// Load читает настройки из окружения. Если ENV_CHEK не задан, сначала подгружается .env.
func Load() (Config, error) {
	if os.Getenv("ENV_CHEK") == "" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("ошибка чтения .env: %w", err)
		}
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Addr:        v.GetString("SERVER_ADDR"),
			Mode:        v.GetString("GIN_MODE"),
			CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Legacy: LegacyConfig{
			Host:     v.GetString("LEGACY_DB_HOST"),
			Port:     v.GetString("LEGACY_DB_PORT"),
			User:     v.GetString("LEGACY_DB_USER"),
			Password: v.GetString("LEGACY_DB_PASSWORD"),
			Name:     v.GetString("LEGACY_DB_NAME"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret:    v.GetString("JWT_ACCESS_SECRET"),
			RefreshSecret:   v.GetString("JWT_REFRESH_SECRET"),
			AccessTTL:       v.GetDuration("JWT_ACCESS_TTL"),
			RefreshTTL:      v.GetDuration("JWT_REFRESH_TTL"),
			VerificationTTL: v.GetDuration("VERIFICATION_TTL"),
		},
		Mail: MailConfig{
			Enabled:      v.GetBool("MAIL_ENABLED"),
			From:         v.GetString("MAIL_FROM"),
			FromName:     v.GetString("MAIL_FROM_NAME"),
			SMTPHost:     v.GetString("SMTP_HOST"),
			SMTPPort:     v.GetInt("SMTP_PORT"),
			SMTPUser:     v.GetString("SMTP_USER"),
			SMTPPassword: v.GetString("SMTP_PASSWORD"),
			SMTPUseTLS:   v.GetBool("SMTP_USE_TLS"),
			ResendAPIKey: v.GetString("RESEND_API_KEY"),
			SendTimeout:  v.GetDuration("MAIL_SEND_TIMEOUT"),
		},
		Roster: RosterConfig{
			TeacherFeedURL:     v.GetString("TEACHER_FEED_URL"),
			TeacherImageURL:    v.GetString("TEACHER_IMAGE_BASE_URL"),
			TeacherSkipEmails:  splitList(v.GetString("TEACHER_FEED_SKIP_EMAILS")),
			TeacherFeedTimeout: v.GetDuration("TEACHER_FEED_TIMEOUT"),
			TeacherCacheTTL:    v.GetDuration("TEACHER_FEED_CACHE_TTL"),
			ScheduleEnabled:    v.GetBool("SYNC_SCHEDULE_ENABLED"),
			Schedule:           v.GetString("SYNC_SCHEDULE"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		GoogleClientID: v.GetString("GOOGLE_CLIENT_ID"),
		FrontendURL:    strings.TrimRight(v.GetString("FRONTEND_URL"), "/"),
		SchoolName:     v.GetString("SCHOOL_NAME"),
		SchoolDomain:   v.GetString("SCHOOL_DOMAIN"),
	}

	if cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		return cfg, fmt.Errorf("не заданы JWT_ACCESS_SECRET и JWT_REFRESH_SECRET")
	}
	if cfg.JWT.AccessSecret == cfg.JWT.RefreshSecret {
		return cfg, fmt.Errorf("JWT_ACCESS_SECRET и JWT_REFRESH_SECRET должны различаться")
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
