package e2e_test

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"os"

	"github.com/metinatakli/cinescope-autotests/internal/actor"
	"github.com/metinatakli/cinescope-autotests/internal/api"
	"github.com/metinatakli/cinescope-autotests/internal/config"
	"github.com/metinatakli/cinescope-autotests/internal/fixture"
	"github.com/metinatakli/cinescope-autotests/internal/logging"
	"github.com/metinatakli/cinescope-autotests/internal/stub"
	"github.com/stretchr/testify/suite"
)

// BaseSuite wires the environment shared by the API suites: the target
// endpoints, the super admin session and a per-test release scope.
type BaseSuite struct {
	suite.Suite

	cfg      config.Config
	env      *fixture.Env
	tenv     *fixture.Env
	server   *httptest.Server
	admin    *actor.User
	closeLog func() error

	ctx   context.Context
	scope *fixture.Scope
}

func (s *BaseSuite) SetupSuite() {
	s.ctx = context.Background()

	cfg, err := config.Load()
	s.Require().NoError(err)

	logger, closeLog, err := logging.New(cfg.Log, os.Stderr)
	s.Require().NoError(err)
	s.closeLog = closeLog

	var opts []fixture.EnvOption

	if cfg.Remote() {
		if err := cfg.RequireSuperAdmin(); err != nil {
			s.T().Skipf("remote target: %v", err)
		}
	} else {
		if cfg.SuperAdmin.Empty() {
			cfg.SuperAdmin = stubSuperAdmin
		}

		srv, err := stub.New(stub.Options{
			SuperAdmin: cfg.SuperAdmin,
			SeedMovies: seedMovies,
			Logger:     logger,
		})
		s.Require().NoError(err)

		s.server = httptest.NewServer(srv.Routes())
		opts = append(opts, fixture.WithEndpoints(api.Endpoints{
			AuthURL:   s.server.URL + "/",
			MoviesURL: s.server.URL + "/",
		}))
	}

	s.cfg = cfg
	s.env = fixture.NewEnv(cfg, logger, opts...)

	s.admin, err = s.env.SuperAdmin(s.ctx)
	s.Require().NoError(err)
}

func (s *BaseSuite) TearDownSuite() {
	if s.admin != nil {
		s.admin.Close()
	}
	if s.server != nil {
		s.server.Close()
	}
	if s.closeLog != nil {
		s.closeLog()
	}
}

// SetupTest binds the test name to the context and the environment, so
// every request logged during the test carries test=<name>. The super
// admin session predates the test and is tagged through the context.
func (s *BaseSuite) SetupTest() {
	name := s.T().Name()

	s.ctx = logging.WithTest(context.Background(), name)
	s.tenv = s.env.ForTest(name)
	s.scope = fixture.NewScope(s.tenv.Logger())
}

func (s *BaseSuite) TearDownTest() {
	s.scope.Close(s.ctx)
}

func (s *BaseSuite) logger() *slog.Logger {
	return s.tenv.Logger()
}

// stub reports whether the suite runs against the in-process stand-in, where
// the seeded data set is known.
func (s *BaseSuite) stub() bool {
	return s.server != nil
}

func (s *BaseSuite) commonUser() *actor.User {
	user, err := s.tenv.CommonUser(s.ctx, s.scope, s.admin)
	s.Require().NoError(err)

	return user
}

func (s *BaseSuite) adminUser() *actor.User {
	user, err := s.tenv.AdminUser(s.ctx, s.scope, s.admin)
	s.Require().NoError(err)

	return user
}
