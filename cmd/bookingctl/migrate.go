package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nekogravitycat/freight-booking-backend/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd)
		if err != nil {
			return err
		}
		defer env.close()

		if err := db.Migrate(cmd.Context(), env.pool, env.log); err != nil {
			env.log.Error("migration failed", zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
