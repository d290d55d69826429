package cmd

import (
	"school_achievements/internal/storage"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Создать таблицы и роли",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		if err := storage.ConnectDatabase(cfg.Database); err != nil {
			return err
		}
		if err := storage.Migrate(storage.DB); err != nil {
			return err
		}
		logger.Info().Msg("миграция выполнена")
		return nil
	},
}
