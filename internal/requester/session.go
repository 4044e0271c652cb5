package requester

import (
	"net/http"
	"net/http/cookiejar"
	"sync"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var defaultHeaders = map[string]string{
	"Content-Type": "application/json",
	"Accept":       "application/json",
}

// Session is the connection shared by every client of one API manager: a
// single http.Client with its cookie jar and the headers sent on every call.
type Session struct {
	client *http.Client

	mu      sync.RWMutex
	headers http.Header
}

type SessionOption func(*Session)

// WithTransport replaces the instrumented default transport.
func WithTransport(rt http.RoundTripper) SessionOption {
	return func(s *Session) {
		s.client.Transport = rt
	}
}

func WithHeader(key, value string) SessionOption {
	return func(s *Session) {
		s.headers.Set(key, value)
	}
}

func NewSession(opts ...SessionOption) *Session {
	jar, _ := cookiejar.New(nil)

	s := &Session{
		client: &http.Client{
			Jar:       jar,
			Transport: otelhttp.NewTransport(http.DefaultTransport.(*http.Transport).Clone()),
		},
		headers: make(http.Header),
	}

	for k, v := range defaultHeaders {
		s.headers.Set(k, v)
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Session) SetHeader(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.headers.Set(key, value)
}

func (s *Session) DelHeader(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.headers.Del(key)
}

func (s *Session) Header(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.headers.Get(key)
}

func (s *Session) SetBearer(token string) {
	s.SetHeader("Authorization", "Bearer "+token)
}

// headersWith returns the session headers merged with per-call overrides.
func (s *Session) headersWith(overrides map[string]string) http.Header {
	s.mu.RLock()
	h := s.headers.Clone()
	s.mu.RUnlock()

	for k, v := range overrides {
		h.Set(k, v)
	}

	return h
}

func (s *Session) Close() {
	s.client.CloseIdleConnections()
}
