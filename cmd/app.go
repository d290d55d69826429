package cmd

import (
	"context"
	"time"

	"school_achievements/internal/account"
	"school_achievements/internal/auth"
	"school_achievements/internal/config"
	"school_achievements/internal/mail"
	"school_achievements/internal/roster"
	"school_achievements/internal/storage"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

const legacyConnectTimeout = 5 * time.Second

// app хранит общие зависимости команд serve и sync.
type app struct {
	cfg      config.Config
	logger   zerolog.Logger
	tokens   *auth.TokenManager
	accounts *account.Service
	syncer   *roster.Syncer
	legacy   *roster.StudentTable
}

// newApp подключает базы и собирает сервисы. Redis и старая база учеников необязательны.
func newApp(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*app, error) {
	if err := storage.ConnectDatabase(cfg.Database); err != nil {
		return nil, err
	}
	if err := storage.Migrate(storage.DB); err != nil {
		return nil, err
	}
	cache := storage.InitRedis(cfg.Redis)

	mailer := mail.NewService(
		mail.NewSender(cfg.Mail, logger),
		mail.GormLogStore{DB: storage.DB},
		cfg,
		logger,
	)
	tokens := auth.NewTokenManager(cfg.JWT)
	google := auth.NewGoogleVerifier(cfg.GoogleClientID)

	a := &app{
		cfg:      cfg,
		logger:   logger,
		tokens:   tokens,
		accounts: account.NewService(storage.DB, tokens, mailer, google, cfg.JWT.VerificationTTL, logger),
		syncer: &roster.Syncer{
			Reconciler: roster.NewReconciler(roster.GormStore{DB: storage.DB}, logger),
			Teachers:   roster.NewTeacherFeed(cfg.Roster, cache, logger),
		},
	}

	if cfg.Legacy.Host == "" {
		logger.Warn().Msg("старая база учеников не настроена, синхронизация учеников отключена")
		return a, nil
	}
	students := &roster.StudentTable{
		Connect: func(ctx context.Context) (*sqlx.DB, error) {
			ctx, cancel := context.WithTimeout(ctx, legacyConnectTimeout)
			defer cancel()
			return storage.ConnectLegacy(ctx, cfg.Legacy)
		},
		Domain: cfg.SchoolDomain,
		Logger: logger.With().Str("component", "roster").Logger(),
	}
	a.legacy = students
	a.syncer.Students = students

	// при недоступной базе соединение будет открыто при следующей синхронизации
	if _, err := students.DB(ctx); err != nil {
		logger.Warn().Err(err).Msg("база учеников недоступна, повторное подключение при синхронизации")
	}
	return a, nil
}

func (a *app) Close() {
	if a.legacy != nil {
		_ = a.legacy.Close()
	}
	if storage.RedisClient != nil {
		_ = storage.RedisClient.Close()
	}
	if storage.DB != nil {
		if sqlDB, err := storage.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
