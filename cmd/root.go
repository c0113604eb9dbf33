package cmd

import (
	"context"
	"os"

	"clinichub/config"
	"clinichub/utils"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clinichub",
	Short: "Clinic management backend",
	Long: `clinichub serves the clinic REST API, runs the background worker that
advances appointment statuses and sends reminders, and seeds the admin account.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadConfig()
		utils.InitializeLogger()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newWorkerCmd())
	rootCmd.AddCommand(newSeedAdminCmd())
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
