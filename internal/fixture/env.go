package fixture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/metinatakli/cinescope-autotests/internal/actor"
	"github.com/metinatakli/cinescope-autotests/internal/api"
	"github.com/metinatakli/cinescope-autotests/internal/config"
	"github.com/metinatakli/cinescope-autotests/internal/datagen"
	"github.com/metinatakli/cinescope-autotests/internal/domain"
	"github.com/metinatakli/cinescope-autotests/internal/models"
	"github.com/metinatakli/cinescope-autotests/internal/requester"
)

type Env struct {
	cfg         config.Config
	logger      *slog.Logger
	endpoints   api.Endpoints
	sessionOpts []requester.SessionOption
}

type EnvOption func(*Env)

// WithEndpoints points the managers at other base URLs, e.g. a stub server.
func WithEndpoints(endpoints api.Endpoints) EnvOption {
	return func(e *Env) {
		e.endpoints = endpoints
	}
}

func WithSessionOptions(opts ...requester.SessionOption) EnvOption {
	return func(e *Env) {
		e.sessionOpts = append(e.sessionOpts, opts...)
	}
}

func NewEnv(cfg config.Config, logger *slog.Logger, opts ...EnvOption) *Env {
	e := &Env{
		cfg:    cfg,
		logger: logger,
		endpoints: api.Endpoints{
			AuthURL:   cfg.AuthBaseURL,
			MoviesURL: cfg.MoviesBaseURL,
		},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Env) Config() config.Config {
	return e.cfg
}

func (e *Env) Logger() *slog.Logger {
	return e.logger
}

// ForTest returns a copy whose logger tags every record with the test name.
func (e *Env) ForTest(name string) *Env {
	copied := *e
	copied.logger = e.logger.With("test", name)

	return &copied
}

func (e *Env) NewManager() *api.Manager {
	return api.NewManager(requester.NewSession(e.sessionOpts...), e.endpoints, e.logger)
}

// SuperAdmin authenticates the configured super admin on a fresh session.
// The caller owns the returned user and must Close it.
func (e *Env) SuperAdmin(ctx context.Context) (*actor.User, error) {
	if err := e.cfg.RequireSuperAdmin(); err != nil {
		return nil, err
	}

	m := e.NewManager()

	login, err := m.Auth.Authenticate(ctx, e.cfg.SuperAdmin)
	if err != nil {
		m.Close()
		return nil, fmt.Errorf("authenticate super admin: %w", err)
	}

	return &actor.User{
		ID:       login.User.ID,
		Email:    e.cfg.SuperAdmin.Email,
		Password: e.cfg.SuperAdmin.Password,
		FullName: login.User.FullName,
		Roles:    login.User.Roles,
		API:      m,
	}, nil
}

// CommonUser creates a USER through admin and logs it in on its own
// session. The account is deleted when scope closes.
func (e *Env) CommonUser(ctx context.Context, scope *Scope, admin *actor.User) (*actor.User, error) {
	return e.createdUser(ctx, scope, admin, domain.RoleUser)
}

func (e *Env) AdminUser(ctx context.Context, scope *Scope, admin *actor.User) (*actor.User, error) {
	return e.createdUser(ctx, scope, admin, domain.RoleAdmin)
}

func (e *Env) createdUser(ctx context.Context, scope *Scope, admin *actor.User, role domain.Role) (*actor.User, error) {
	payload := datagen.UserCreate(role)

	res, err := admin.API.Users.CreateUser(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", role, err)
	}

	var created models.User
	if err := res.JSON(&created); err != nil {
		return nil, fmt.Errorf("decode created %s: %w", role, err)
	}

	scope.Defer("delete user "+created.Email, func(ctx context.Context) error {
		return admin.API.Users.CleanUpUser(ctx, created.ID)
	})

	user, err := e.login(ctx, scope, domain.Credentials{Email: payload.Email, Password: payload.Password})
	if err != nil {
		return nil, err
	}

	user.FullName = created.FullName

	return user, nil
}

// RegisteredUser self-registers a fresh USER and logs it in. A 409 from
// /register means the account already exists, in which case logging in
// is enough. When admin is non-nil the account is deleted on close.
func (e *Env) RegisteredUser(ctx context.Context, scope *Scope, admin *actor.User) (*actor.User, error) {
	payload := datagen.RegistrationUser()

	m := e.NewManager()
	defer m.Close()

	_, err := m.Auth.Register(ctx, payload)
	switch {
	case err == nil:
	case requester.IsStatus(err, http.StatusConflict):
		e.logger.Warn("user already registered, logging in instead", "email", payload.Email)
	default:
		return nil, fmt.Errorf("register user: %w", err)
	}

	user, err := e.login(ctx, scope, payload.Credentials())
	if err != nil {
		return nil, err
	}

	user.FullName = payload.FullName

	if admin != nil {
		scope.Defer("delete user "+user.Email, func(ctx context.Context) error {
			return admin.API.Users.CleanUpUser(ctx, user.ID)
		})
	}

	return user, nil
}

func (e *Env) login(ctx context.Context, scope *Scope, creds domain.Credentials) (*actor.User, error) {
	m := e.NewManager()

	login, err := m.Auth.Authenticate(ctx, creds)
	if err != nil {
		m.Close()
		return nil, fmt.Errorf("log in %s: %w", creds.Email, err)
	}

	scope.Defer("close session of "+creds.Email, func(context.Context) error {
		m.Close()
		return nil
	})

	return &actor.User{
		ID:       login.User.ID,
		Email:    creds.Email,
		Password: creds.Password,
		FullName: login.User.FullName,
		Roles:    login.User.Roles,
		API:      m,
	}, nil
}

// ForgetUser deletes, on close, whatever account ends up registered under
// email. It is meant for flows such as UI registration that create users
// outside the API clients.
func (e *Env) ForgetUser(scope *Scope, admin *actor.User, email string) {
	scope.Defer("delete user "+email, func(ctx context.Context) error {
		res, err := admin.API.Users.GetUser(ctx, email, http.StatusOK, http.StatusNotFound)
		if err != nil {
			return err
		}
		if res.StatusCode == http.StatusNotFound {
			return nil
		}

		var user models.User
		if err := res.JSON(&user); err != nil {
			return err
		}

		return admin.API.Users.CleanUpUser(ctx, user.ID)
	})
}

// Movie creates a random movie through admin and deletes it on close.
func (e *Env) Movie(ctx context.Context, scope *Scope, admin *actor.User) (*models.Movie, error) {
	res, err := admin.API.Movies.CreateMovie(ctx, datagen.Movie())
	if err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	var movie models.Movie
	if err := res.JSON(&movie); err != nil {
		return nil, fmt.Errorf("decode created movie: %w", err)
	}

	if movie.ID == 0 {
		return nil, errors.New("create movie: response carries no id")
	}

	scope.Defer(fmt.Sprintf("delete movie %d", movie.ID), func(ctx context.Context) error {
		return admin.API.Movies.CleanUpMovie(ctx, movie.ID)
	})

	return &movie, nil
}

// Review leaves a random review from author on the movie and removes it on
// close with the author's own session.
func (e *Env) Review(ctx context.Context, scope *Scope, author *actor.User, movieID int) (*models.Review, error) {
	res, err := author.API.Reviews.CreateReview(ctx, movieID, datagen.Review())
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	var review models.Review
	if err := res.JSON(&review); err != nil {
		return nil, fmt.Errorf("decode created review: %w", err)
	}

	scope.Defer(fmt.Sprintf("delete review on movie %d", movieID), func(ctx context.Context) error {
		return author.API.Reviews.CleanUpReview(ctx, movieID, author.ID)
	})

	return &review, nil
}
