package main

import (
	"fmt"

	"github.com/metinatakli/cinescope-autotests/internal/api"
	"github.com/metinatakli/cinescope-autotests/internal/models"
	"github.com/metinatakli/cinescope-autotests/internal/requester"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Log in as the super admin and list movies on the configured target",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := setup(ctx)
	if err != nil {
		return err
	}
	defer rt.close(ctx)

	if err := rt.cfg.RequireSuperAdmin(); err != nil {
		return err
	}

	manager := api.NewManager(requester.NewSession(), api.Endpoints{
		AuthURL:   rt.cfg.AuthBaseURL,
		MoviesURL: rt.cfg.MoviesBaseURL,
	}, rt.logger)
	defer manager.Close()

	login, err := manager.Auth.Authenticate(ctx, rt.cfg.SuperAdmin)
	if err != nil {
		return fmt.Errorf("authenticate super admin: %w", err)
	}

	res, err := manager.Movies.GetMovies(ctx, api.MovieParams{})
	if err != nil {
		return fmt.Errorf("list movies: %w", err)
	}

	var list models.MovieList
	if err := res.JSON(&list); err != nil {
		return err
	}

	rt.logger.Info("target is reachable",
		"auth", rt.cfg.AuthBaseURL,
		"movies", rt.cfg.MoviesBaseURL,
		"user", login.User.Email,
		"movie_count", list.Count,
	)

	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d movies\n", list.Count)

	return nil
}
