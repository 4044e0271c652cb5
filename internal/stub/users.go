package stub

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/cinescope-autotests/internal/domain"
	"github.com/metinatakli/cinescope-autotests/internal/models"
)

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var input models.UserCreateRequest

	if !s.readInput(w, r, &input) {
		return
	}

	user := &domain.User{
		Email:    input.Email,
		FullName: input.FullName,
		Roles:    input.Roles,
		Verified: input.Verified,
		Banned:   input.Banned,
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

	s.writeJSON(w, r, http.StatusCreated, toUserResponse(user))
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.user(chi.URLParam(r, "idOrEmail"))
	if err != nil {
		s.notFoundResponse(w, r, msgUserNotFound)
		return
	}

	s.writeJSON(w, r, http.StatusOK, toUserResponse(user))
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if caller := contextGetUser(r); caller != nil && caller.ID == id {
		s.forbiddenResponse(w, r)
		return
	}

	user, err := s.store.deleteUser(id)
	if err != nil {
		s.notFoundResponse(w, r, msgUserNotFound)
		return
	}

	s.writeJSON(w, r, http.StatusOK, toUserResponse(user))
}
