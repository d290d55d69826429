package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"school_achievements/internal/handlers"
	"school_achievements/internal/router"
	"school_achievements/internal/storage"
	"school_achievements/internal/tasks"
	"school_achievements/internal/validation"
	"school_achievements/internal/ws"

	"github.com/spf13/cobra"
)

var serverAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP-сервер",
	Long: `Запускает HTTP API. При старте выполняется миграция схемы,
при SYNC_SCHEDULE_ENABLED=true включается ночная синхронизация реестров.
Сервер завершается корректно по SIGINT и SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverAddr, "addr", "", "адрес сервера (по умолчанию SERVER_ADDR)")
}

func runServer() error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if serverAddr != "" {
		cfg.Server.Addr = serverAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := validation.Register(); err != nil {
		return err
	}

	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	scheduler, err := tasks.InitScheduler(cfg.Roster, logger,
		tasks.Job{Name: "sync_teachers", Run: syncJob(a.syncer.SyncTeachers)},
		tasks.Job{Name: "sync_students", Run: syncJob(a.syncer.SyncStudents)},
	)
	if err != nil {
		return err
	}
	if scheduler != nil {
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()
	}

	h := handlers.New(storage.DB, a.accounts, hub, a.syncer, logger)
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router.New(cfg.Server, h, a.tokens, logger),
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("сервер запущен")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("остановка сервера")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
