package commands

import (
	"hotelbook/config"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|status]",
	Short:     "Apply or inspect database migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.ConnectDB(cfg)
		if err != nil {
			return err
		}

		log.Info("Đang chạy migrate %s...", args[0])
		if err := config.RunMigrations(cmd.Context(), db, args[0]); err != nil {
			return err
		}
		log.Info("Migrate %s xong", args[0])
		return nil
	},
}
