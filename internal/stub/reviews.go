package stub

import (
	"errors"
	"net/http"

	"github.com/metinatakli/cinescope-autotests/internal/domain"
	"github.com/metinatakli/cinescope-autotests/internal/models"
)

func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		s.notFoundResponse(w, r, msgMovieNotFound)
		return
	}

	reviews, err := s.store.movieReviews(id)
	if err != nil {
		s.notFoundResponse(w, r, msgMovieNotFound)
		return
	}

	resp := make([]models.Review, 0, len(reviews))
	for _, rv := range reviews {
		resp = append(resp, toReviewResponse(rv))
	}

	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) createReview(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		s.notFoundResponse(w, r, msgMovieNotFound)
		return
	}

	var input models.ReviewCreateRequest

	if !s.readInput(w, r, &input) {
		return
	}

	author := contextGetUser(r)
	review := &domain.Review{
		MovieID:  id,
		UserID:   author.ID,
		FullName: author.FullName,
		Rating:   input.Rating,
		Text:     input.Text,
	}

	if err := s.store.addReview(review); err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			s.notFoundResponse(w, r, msgMovieNotFound)
		case errors.Is(err, errReviewExists):
			s.conflictResponse(w, r, msgReviewExists)
		default:
			s.serverErrorResponse(w, r, err)
		}
		return
	}

	s.writeJSON(w, r, http.StatusCreated, toReviewResponse(review))
}

// deleteReview removes the caller's own review. Admins may name another
// author through the userId query parameter.
func (s *Server) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		s.notFoundResponse(w, r, msgMovieNotFound)
		return
	}

	caller := contextGetUser(r)

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = caller.ID
	}

	if userID != caller.ID && !caller.Roles.Has(domain.RoleAdmin) && !caller.Roles.Has(domain.RoleSuperAdmin) {
		s.forbiddenResponse(w, r)
		return
	}

	review, err := s.store.deleteReview(id, userID)
	if err != nil {
		s.notFoundResponse(w, r, msgReviewNotFound)
		return
	}

	s.writeJSON(w, r, http.StatusOK, toReviewResponse(review))
}
