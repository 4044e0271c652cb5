package main

import (
	"github.com/metinatakli/cinescope-autotests/internal/dbhelper"
	"github.com/spf13/cobra"
)

var sweepFlags struct {
	emailPattern string
	moviePrefix  string
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete users and movies left behind by interrupted test runs",
	RunE:  runSweep,
}

func init() {
	sweepCmd.Flags().StringVar(&sweepFlags.emailPattern, "emails", "kek%@gmail.com", "LIKE pattern of generated user emails")
	sweepCmd.Flags().StringVar(&sweepFlags.moviePrefix, "movies", "Фильм ", "name prefix of generated movies")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := setup(ctx)
	if err != nil {
		return err
	}
	defer rt.close(ctx)

	if !rt.cfg.DB.Configured() {
		return errNoDatabase
	}

	pool, err := dbhelper.NewPool(ctx, rt.cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	users, err := dbhelper.NewUserHelper(pool).DeleteByEmailPattern(ctx, sweepFlags.emailPattern)
	if err != nil {
		return err
	}

	movies, err := dbhelper.NewMovieHelper(pool).DeleteByNamePrefix(ctx, sweepFlags.moviePrefix)
	if err != nil {
		return err
	}

	rt.logger.Info("sweep finished", "users", users, "movies", movies)

	return nil
}
