// Package tasks запускает периодические задачи сервиса.
package tasks

import (
	"context"
	"fmt"
	"time"

	"school_achievements/internal/config"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// jobTimeout ограничивает одну задачу ночной синхронизации.
const jobTimeout = 30 * time.Minute

// Job это именованная задача планировщика.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// RunJobs выполняет задачи по очереди. Ошибка одной задачи не останавливает остальные.
func RunJobs(ctx context.Context, logger zerolog.Logger, jobs []Job) (failed int) {
	for _, job := range jobs {
		jobCtx, cancel := context.WithTimeout(ctx, jobTimeout)
		start := time.Now()
		err := job.Run(jobCtx)
		cancel()

		if err != nil {
			failed++
			logger.Error().Err(err).Str("job", job.Name).Dur("took", time.Since(start)).Msg("задача завершилась с ошибкой")
			continue
		}
		logger.Info().Str("job", job.Name).Dur("took", time.Since(start)).Msg("задача выполнена")
	}
	return failed
}

// InitScheduler создает планировщик ночной синхронизации реестров. Если расписание
// выключено, возвращает nil. Запуск остается за вызывающим.
func InitScheduler(cfg config.RosterConfig, logger zerolog.Logger, jobs ...Job) (*cron.Cron, error) {
	if !cfg.ScheduleEnabled {
		return nil, nil
	}
	logger = logger.With().Str("component", "scheduler").Logger()
	cl := cronLogger{logger}

	c := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	_, err := c.AddFunc(cfg.Schedule, func() {
		RunJobs(context.Background(), logger, jobs)
	})
	if err != nil {
		return nil, fmt.Errorf("неверное расписание %q: %w", cfg.Schedule, err)
	}
	logger.Info().Str("schedule", cfg.Schedule).Int("jobs", len(jobs)).Msg("cron-планировщик настроен")
	return c, nil
}

// cronLogger передает сообщения cron в zerolog.
type cronLogger struct {
	zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.Logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
