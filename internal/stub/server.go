// Package stub is an in-memory stand-in for the Cinescope auth and movies
// services. It answers the same routes with the same status codes and error
// envelopes, so the API suites can run without the remote environment.
package stub

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/cinescope-autotests/internal/datagen"
	"github.com/metinatakli/cinescope-autotests/internal/domain"
	"github.com/metinatakli/cinescope-autotests/internal/middleware"
	"github.com/metinatakli/cinescope-autotests/internal/vcs"
	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "cinescope-stub"

const defaultTokenTTL = 30 * time.Minute

var (
	errMovieExists  = errors.New("movie already exists")
	errReviewExists = errors.New("review already exists")
)

type Options struct {
	// SuperAdmin is seeded on start.
	SuperAdmin domain.Credentials
	// Secret signs access tokens. A random one is used when empty.
	Secret   []byte
	TokenTTL time.Duration
	// SeedMovies is the number of random movies created on start.
	SeedMovies int
	Logger     *slog.Logger
	// TracerProvider receives the request spans. The global provider is
	// used when nil.
	TracerProvider trace.TracerProvider
}

type Server struct {
	logger *slog.Logger
	store  *store
	tokens *tokenIssuer
	tracer trace.TracerProvider
}

func New(opts Options) (*Server, error) {
	if opts.SuperAdmin.Empty() {
		return nil, fmt.Errorf("stub: %w", domain.ErrMissingCredentials)
	}

	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	if opts.TracerProvider == nil {
		opts.TracerProvider = otel.GetTracerProvider()
	}

	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}

	tokens, err := newTokenIssuer(opts.Secret, opts.TokenTTL)
	if err != nil {
		return nil, err
	}

	s := &Server{
		logger: opts.Logger,
		store:  newStore(),
		tokens: tokens,
		tracer: opts.TracerProvider,
	}

	admin := &domain.User{
		Email:    opts.SuperAdmin.Email,
		FullName: "Super Admin",
		Roles:    domain.Roles{domain.RoleSuperAdmin},
		Verified: true,
	}
	if err := admin.Password.Set(opts.SuperAdmin.Password); err != nil {
		return nil, err
	}
	if err := s.store.createUser(admin); err != nil {
		return nil, err
	}

	for range opts.SeedMovies {
		if err := s.store.createMovie(datagen.DBMovie()); err != nil && !errors.Is(err, errMovieExists) {
			return nil, err
		}
	}

	s.logger.Info("stub seeded", "super_admin", admin.Email, "movies", opts.SeedMovies)

	return s, nil
}

// Routes serves both services from one router; the auth and movies
// routes do not overlap.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(middleware.NotFoundHandler)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler)

	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r), otelchi.WithTracerProvider(s.tracer)))
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestLogger(s.logger))
	r.Use(middleware.RecoverPanic(s.logger))
	r.Use(s.authenticate)

	r.Get("/healthcheck", s.healthcheck)

	r.Post("/register", s.register)
	r.Post("/login", s.login)

	r.Route("/user", func(r chi.Router) {
		r.With(s.requireRole(domain.RoleSuperAdmin)).Post("/", s.createUser)
		r.With(s.requireRole(domain.RoleAdmin, domain.RoleSuperAdmin)).Get("/{idOrEmail}", s.getUser)
		r.With(s.requireRole(domain.RoleSuperAdmin)).Delete("/{id}", s.deleteUser)
	})

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", s.listMovies)
		r.With(s.requireRole(domain.RoleSuperAdmin)).Post("/", s.createMovie)

		r.Route("/{movieId}", func(r chi.Router) {
			r.Get("/", s.getMovie)
			r.With(s.requireRole(domain.RoleSuperAdmin)).Patch("/", s.updateMovie)
			r.With(s.requireRole(domain.RoleSuperAdmin)).Delete("/", s.deleteMovie)

			r.Get("/reviews", s.listReviews)
			r.With(s.requireAuthentication).Post("/reviews", s.createReview)
			r.With(s.requireAuthentication).Delete("/reviews", s.deleteReview)
		})
	})

	return r
}

func (s *Server) healthcheck(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "UP",
		"version": vcs.Version(),
	})
}
