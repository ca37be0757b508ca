// Package commands là các lệnh CLI của hotelbook: chạy server và migrate database.
package commands

import (
	"hotelbook/config"
	"hotelbook/services/logger"

	"github.com/spf13/cobra"
)

var (
	cfg *config.Config
	log *logger.ZapLogger

	rootCmd = &cobra.Command{
		Use:   "hotelbook",
		Short: "Hotel booking API server",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			log = logger.NewLogger(cfg.Env, logger.ParseLevel(cfg.LogLevel))
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = log.Sync()
		},
		// Không truyền lệnh con thì chạy server
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
)

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
