// Package api holds one client per Cinescope resource and the Manager that
// binds them to a single session.
package api

import (
	"log/slog"

	"github.com/metinatakli/cinescope-autotests/internal/requester"
)

type Endpoints struct {
	AuthURL   string
	MoviesURL string
}

// Manager owns one session and the clients built on it. Closing the manager
// releases the session.
type Manager struct {
	session *requester.Session

	Auth    *AuthAPI
	Users   *UserAPI
	Movies  *MoviesAPI
	Reviews *ReviewsAPI
}

func NewManager(session *requester.Session, endpoints Endpoints, logger *slog.Logger) *Manager {
	return &Manager{
		session: session,
		Auth:    NewAuthAPI(session, endpoints.AuthURL, logger),
		Users:   NewUserAPI(session, endpoints.AuthURL, logger),
		Movies:  NewMoviesAPI(session, endpoints.MoviesURL, logger),
		Reviews: NewReviewsAPI(session, endpoints.MoviesURL, logger),
	}
}

func (m *Manager) Session() *requester.Session {
	return m.session
}

func (m *Manager) Close() {
	m.session.Close()
}

func orDefault(expect []int, def ...int) []int {
	if len(expect) == 0 {
		return def
	}

	return expect
}
