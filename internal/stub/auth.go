package stub

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/metinatakli/cinescope-autotests/internal/domain"
	"github.com/metinatakli/cinescope-autotests/internal/jsonutil"
	"github.com/metinatakli/cinescope-autotests/internal/models"
)

type contextKey string

const userContextKey = contextKey("user")

func contextSetUser(r *http.Request, u *domain.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userContextKey, u))
}

func contextGetUser(r *http.Request) *domain.User {
	u, _ := r.Context().Value(userContextKey).(*domain.User)
	return u
}

// authenticate resolves a bearer token into the calling user. Requests
// without a usable token pass through anonymously; guarded routes reject
// them in requireAuthentication.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		scheme, raw, ok := strings.Cut(r.Header.Get("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		c, err := s.tokens.parse(raw)
		if err != nil {
			s.logger.Debug("rejected bearer token", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		u, err := s.store.user(c.Subject)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, contextSetUser(r, u))
	})
}

func (s *Server) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contextGetUser(r) == nil {
			s.unauthorizedResponse(w, r, msgUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return s.requireAuthentication(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := contextGetUser(r)

			for _, role := range roles {
				if u.Roles.Has(role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			s.logger.Warn("role check failed", "user", u.Email, "roles", u.Roles.Strings(), "uri", r.URL.RequestURI())
			s.forbiddenResponse(w, r)
		}))
	}
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var input models.RegistrationUserData

	if err := jsonutil.ReadJSON(w, r, &input); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	if len(input.Roles) == 0 {
		input.Roles = domain.Roles{domain.RoleUser}
	}

	if err := input.Validate(); err != nil {
		s.failedValidationResponse(w, r, err)
		return
	}

	// Self-registration always yields a plain USER.
	user := &domain.User{
		Email:    input.Email,
		FullName: input.FullName,
		Roles:    domain.Roles{domain.RoleUser},
		Verified: true,
	}

	if err := user.Password.Set(input.Password); err != nil {
		s.serverErrorResponse(w, r, err)
		return
	}

	if err := s.store.createUser(user); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			s.conflictResponse(w, r, msgUserExists)
		default:
			s.serverErrorResponse(w, r, err)
		}
		return
	}

	s.writeJSON(w, r, http.StatusCreated, toRegisterResponse(user))
}

// checkCredentials resolves the user behind a login request. Malformed input,
// an unknown email and a wrong password all yield ErrInvalidCredentials; a
// banned user yields ErrForbidden.
func (s *Server) checkCredentials(input models.LoginRequest) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.store.user(input.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	match, err := user.Password.Matches(input.Password)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, domain.ErrInvalidCredentials
	}

	if user.Banned {
		return nil, domain.ErrForbidden
	}

	return user, nil
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var input models.LoginRequest

	if err := jsonutil.ReadJSON(w, r, &input); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	user, err := s.checkCredentials(input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			s.unauthorizedResponse(w, r, msgBadCredentials)
		case errors.Is(err, domain.ErrForbidden):
			s.forbiddenResponse(w, r)
		default:
			s.serverErrorResponse(w, r, err)
		}
		return
	}

	token, err := s.tokens.issue(user)
	if err != nil {
		s.serverErrorResponse(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, models.LoginResponse{
		AccessToken:  token,
		RefreshToken: uuid.NewString(),
		ExpiresIn:    int(s.tokens.ttl.Seconds()),
		User: models.UserInLoginResponse{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Roles:    user.Roles,
		},
	})
}
