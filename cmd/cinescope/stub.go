package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/metinatakli/cinescope-autotests/internal/stub"
	"github.com/spf13/cobra"
)

var stubFlags struct {
	addr string
	seed int
}

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Serve the in-memory auth and movies services",
	RunE:  runStub,
}

func init() {
	stubCmd.Flags().StringVar(&stubFlags.addr, "addr", ":3000", "listen address")
	stubCmd.Flags().IntVar(&stubFlags.seed, "seed", 50, "number of random movies to create on start")
	rootCmd.AddCommand(stubCmd)
}

func runStub(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := setup(ctx)
	if err != nil {
		return err
	}
	defer rt.close(context.Background())

	srv, err := stub.New(stub.Options{
		SuperAdmin: rt.cfg.SuperAdmin,
		SeedMovies: stubFlags.seed,
		Logger:     rt.logger,
	})
	if err != nil {
		return err
	}

	rt.logger.Info("stub seeded", "movies", stubFlags.seed, "super_admin", rt.cfg.SuperAdmin.Email)

	return srv.Serve(ctx, stubFlags.addr)
}
