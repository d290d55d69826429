// Package storagetest поднимает одноразовый Postgres в контейнере для интеграционных тестов.
package storagetest

import (
	"context"
	"testing"
	"time"

	"school_achievements/internal/storage"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// NewPostgres запускает контейнер, применяет миграции и возвращает соединение.
// Тест пропускается, если Docker недоступен или задан флаг -short.
func NewPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("интеграционный тест пропущен в режиме -short")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	container, err := tcpostgres.Run(
		ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("school_test"),
		tcpostgres.WithUsername("school"),
		tcpostgres.WithPassword("school"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := storage.Open(dsn)
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db))

	return db
}
