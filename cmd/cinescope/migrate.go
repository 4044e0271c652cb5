package main

import (
	"errors"

	"github.com/metinatakli/cinescope-autotests/internal/dbhelper"
	"github.com/spf13/cobra"
)

var migrationsSource string

var errNoDatabase = errors.New("database is not configured: set DB_MOVIES_HOST, DB_MOVIES_NAME and DB_MOVIES_USERNAME")

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the helper database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd, true)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back all helper database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd, false)
	},
}

func init() {
	migrateCmd.PersistentFlags().StringVar(&migrationsSource, "source", "file://migrations", "migrations source URL")
	migrateCmd.AddCommand(migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, up bool) error {
	rt, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.close(cmd.Context())

	if !rt.cfg.DB.Configured() {
		return errNoDatabase
	}

	if err := dbhelper.Migrate(rt.cfg.DB.DSN(), migrationsSource, up); err != nil {
		return err
	}

	if up {
		rt.logger.Info("migrations applied successfully")
	} else {
		rt.logger.Info("migrations rolled back successfully")
	}

	return nil
}
