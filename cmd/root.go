// Package cmd содержит команды командной строки сервиса.
package cmd

import (
	"fmt"
	"os"

	"school_achievements/internal/config"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	logFormat string

	rootCmd = &cobra.Command{
		Use:   "school-achievements",
		Short: "Сервис учета достижений школьников",
		Long: `Сервис учета достижений школьников: REST API журналов, зачеток и проектных офисов,
синхронизация учителей и учеников с реестрами школы.

Без подкоманды запускается HTTP-сервер.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCmd.RunE(cmd, args)
		},
	}
)

// Execute запускает корневую команду.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "уровень логов (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "формат логов (json, console)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig читает настройки и применяет глобальные флаги.
func loadConfig() (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, zerolog.Nop(), fmt.Errorf("ошибка конфигурации: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	return cfg, config.NewLogger(cfg.Logging), nil
}
