package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version задается при сборке: -ldflags "-X school_achievements/cmd.Version=1.2.3".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Показать версию",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "school-achievements %s (%s)\n", Version, runtime.Version())
	},
}
