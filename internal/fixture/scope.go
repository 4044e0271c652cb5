// Package fixture builds the identities, resources and browser sessions
// the suites run against. Every builder registers its own teardown on a
// Scope; closing the scope releases everything in reverse order.
package fixture

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

type release struct {
	what string
	fn   func(context.Context) error
}

type Scope struct {
	logger *slog.Logger

	mu       sync.Mutex
	releases []release
}

func NewScope(logger *slog.Logger) *Scope {
	return &Scope{logger: logger}
}

// Defer registers fn to run on Close. Releases run last-in first-out.
func (s *Scope) Defer(what string, fn func(context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.releases = append(s.releases, release{what: what, fn: fn})
}

// Close runs every release once. Failures are logged and never stop the
// remaining releases.
func (s *Scope) Close(ctx context.Context) {
	s.mu.Lock()
	releases := s.releases
	s.releases = nil
	s.mu.Unlock()

	for i := len(releases) - 1; i >= 0; i-- {
		BestEffort(ctx, s.logger, releases[i].what, releases[i].fn)
	}
}

// Len reports how many releases are pending.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.releases)
}

// BestEffort runs fn and logs a failure or panic instead of propagating it.
// The error is returned for callers that want to inspect it.
func BestEffort(ctx context.Context, logger *slog.Logger, what string, fn func(context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}

		if err != nil {
			logger.Warn("teardown failed", "what", what, "error", err)
		}
	}()

	return fn(ctx)
}
