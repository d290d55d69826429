package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"school_achievements/internal/config"
	"school_achievements/internal/models"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	DB          *gorm.DB
	RedisClient *redis.Client
)

// ConnectDatabase открывает соединение с основной базой Postgres и сохраняет его в DB.
func ConnectDatabase(cfg config.DatabaseConfig) error {
	db, err := Open(cfg.DSN())
	if err != nil {
		return err
	}
	DB = db
	log.Info().Str("host", cfg.Host).Str("db", cfg.Name).Msg("подключение к базе данных успешно")
	return nil
}

// Open открывает gorm-соединение по DSN.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}
	return db, nil
}

// Migrate создает таблицы и заполняет справочник ролей.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.ProjectOffice{}, "AccessibleEvents", &models.ProjectOfficeEvent{}); err != nil {
		return fmt.Errorf("ошибка настройки связующей таблицы: %w", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("ошибка при миграции: %w", err)
	}
	return SeedRoles(db)
}

// SeedRoles добавляет недостающие роли, не трогая существующие.
func SeedRoles(db *gorm.DB) error {
	for _, role := range models.DefaultRoles {
		r := role
		if err := db.Where(models.Role{Name: r.Name}).FirstOrCreate(&r).Error; err != nil {
			return fmt.Errorf("ошибка создания роли %s: %w", r.Name, err)
		}
	}
	return nil
}

// InitRedis создает клиента Redis. Недоступный Redis не считается фатальной ошибкой:
// кэш просто не используется.
func InitRedis(cfg config.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis недоступен, кэш отключен")
		_ = client.Close()
		RedisClient = nil
		return nil
	}

	RedisClient = client
	return client
}

// ConnectLegacy открывает соединение только для чтения со старой базой учеников (MySQL).
func ConnectLegacy(ctx context.Context, cfg config.LegacyConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе учеников: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// IsNotFound сообщает, что запись не найдена.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
