package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"school_achievements/internal/models"
	"school_achievements/internal/roster"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:       "sync teachers|students",
	Short:     "Синхронизировать пользователей с реестром школы",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"teachers", "students"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		role := models.RoleTeacher
		if args[0] == "students" {
			role = models.RoleStudent
		}
		stats, err := a.syncer.Sync(cmd.Context(), role)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

// syncJob приводит синхронизацию к виду задачи планировщика.
func syncJob(sync func(ctx context.Context) (roster.Stats, error)) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := sync(ctx)
		return err
	}
}
