package stub

import (
	"errors"
	"net/http"

	"github.com/metinatakli/cinescope-autotests/internal/jsonutil"
	"github.com/metinatakli/cinescope-autotests/internal/models"
	appvalidator "github.com/metinatakli/cinescope-autotests/internal/validator"
)

const (
	msgMovieNotFound  = "Фильм не найден"
	msgUserNotFound   = "Пользователь не найден"
	msgReviewNotFound = "Отзыв не найден"
	msgUserExists     = "Пользователь с таким email уже зарегистрирован"
	msgMovieExists    = "Фильм с таким названием уже существует"
	msgReviewExists   = "Вы уже оставили отзыв к этому фильму"
	msgBadCredentials = "Неверный логин или пароль"
	msgForbidden      = "Forbidden resource"
	msgUnauthorized   = "Unauthorized"
)

func (s *Server) logError(r *http.Request, err error) {
	s.logger.Error(err.Error(), "method", r.Method, "uri", r.URL.RequestURI())
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	if err := jsonutil.WriteJSON(w, status, data, nil); err != nil {
		s.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// errorResponse writes the envelope both services use. message is either a
// string or a list of strings.
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	s.writeJSON(w, r, status, models.APIError{
		Message:    message,
		Error:      http.StatusText(status),
		StatusCode: status,
	})
}

// readInput decodes the body into dst and validates it. On failure it has
// already answered 400 and reports false.
func (s *Server) readInput(w http.ResponseWriter, r *http.Request, dst models.Validatable) bool {
	if err := jsonutil.ReadJSON(w, r, dst); err != nil {
		s.badRequestResponse(w, r, err)
		return false
	}

	if err := dst.Validate(); err != nil {
		s.failedValidationResponse(w, r, err)
		return false
	}

	return true
}

func (s *Server) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	s.logError(r, err)
	s.errorResponse(w, r, http.StatusInternalServerError, "Internal server error")
}

func (s *Server) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	s.errorResponse(w, r, http.StatusBadRequest, []string{err.Error()})
}

func (s *Server) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var verr *appvalidator.ValidationError
	if !errors.As(err, &verr) {
		s.badRequestResponse(w, r, err)
		return
	}

	messages := make([]string, 0, len(verr.Issues))
	for _, issue := range verr.Issues {
		messages = append(messages, issue.Field+": "+issue.Issue)
	}

	s.errorResponse(w, r, http.StatusBadRequest, messages)
}

func (s *Server) notFoundResponse(w http.ResponseWriter, r *http.Request, message string) {
	s.errorResponse(w, r, http.StatusNotFound, message)
}

func (s *Server) conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	s.errorResponse(w, r, http.StatusConflict, message)
}

func (s *Server) unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	s.writeJSON(w, r, http.StatusUnauthorized, models.APIError{
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	})
}

func (s *Server) forbiddenResponse(w http.ResponseWriter, r *http.Request) {
	s.errorResponse(w, r, http.StatusForbidden, msgForbidden)
}
