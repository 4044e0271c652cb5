package e2e_test

import (
	"context"
	"os"

	"github.com/metinatakli/cinescope-autotests/internal/actor"
	"github.com/metinatakli/cinescope-autotests/internal/config"
	"github.com/metinatakli/cinescope-autotests/internal/fixture"
	"github.com/metinatakli/cinescope-autotests/internal/logging"
	"github.com/metinatakli/cinescope-autotests/internal/pages"
	"github.com/ozontech/allure-go/pkg/allure"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

const traceMimeType allure.MimeType = "application/zip"

// UIBaseSuite owns one browser per suite and one traced page per test. The
// trace archive of every test is attached to its report.
type UIBaseSuite struct {
	suite.Suite

	ctx      context.Context
	cfg      config.Config
	env      *fixture.Env
	tenv     *fixture.Env
	browser  *fixture.Browser
	admin    *actor.User
	closeLog func() error
	skip     string

	scope   *fixture.Scope
	session *fixture.PageSession
}

func (s *UIBaseSuite) BeforeAll(t provider.T) {
	s.ctx = context.Background()

	cfg, err := config.Load()
	t.Require().NoError(err)
	s.cfg = cfg

	if !cfg.Remote() {
		s.skip = "UI suites run against the remote UI only, set CINESCOPE_TARGET=remote"
		return
	}

	if err := cfg.RequireSuperAdmin(); err != nil {
		s.skip = err.Error()
		return
	}

	logger, closeLog, err := logging.New(cfg.Log, os.Stderr)
	t.Require().NoError(err)
	s.closeLog = closeLog

	s.env = fixture.NewEnv(cfg, logger)

	s.browser, err = fixture.LaunchBrowser(cfg.Browser, logger)
	if err != nil {
		s.skip = err.Error()
		return
	}

	s.admin, err = s.env.SuperAdmin(s.ctx)
	t.Require().NoError(err)
}

func (s *UIBaseSuite) AfterAll(t provider.T) {
	if s.admin != nil {
		s.admin.Close()
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			t.Logf("close browser: %v", err)
		}
	}
	if s.closeLog != nil {
		s.closeLog()
	}
}

func (s *UIBaseSuite) BeforeEach(t provider.T) {
	if s.skip != "" {
		t.Skip(s.skip)
	}

	t.Epic("Тестирование UI")

	s.ctx = logging.WithTest(context.Background(), t.Name())
	s.tenv = s.env.ForTest(t.Name())
	s.scope = fixture.NewScope(s.tenv.Logger())

	session, err := s.browser.NewPage(t.Name())
	t.Require().NoError(err)
	s.session = session
}

func (s *UIBaseSuite) AfterEach(t provider.T) {
	if s.session != nil {
		path, err := s.session.Close()
		if err != nil {
			t.Logf("close page session: %v", err)
		} else if trace, err := os.ReadFile(path); err == nil {
			t.WithNewAttachment("trace", traceMimeType, trace)
		}
		s.session = nil
	}

	if s.scope != nil {
		s.scope.Close(s.ctx)
		s.scope = nil
	}
}

func (s *UIBaseSuite) loginPage(t provider.T) *pages.LoginPage {
	return pages.NewLoginPage(s.session.Page, s.cfg.UIBaseURL, pages.WithAttacher(t))
}

func (s *UIBaseSuite) registerPage(t provider.T) *pages.RegisterPage {
	return pages.NewRegisterPage(s.session.Page, s.cfg.UIBaseURL, pages.WithAttacher(t))
}

func (s *UIBaseSuite) reviewPage(t provider.T) *pages.ReviewPage {
	return pages.NewReviewPage(s.session.Page, s.cfg.UIBaseURL, pages.WithAttacher(t))
}
