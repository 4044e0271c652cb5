package stub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// Serve runs the stub on addr until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error, 1)

	go func() {
		<-ctx.Done()

		s.logger.Info("shutting down stub", "addr", srv.Addr)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("starting stub", "addr", srv.Addr)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownError; err != nil {
		return err
	}

	s.logger.Info("stopped stub", "addr", srv.Addr)

	return nil
}
