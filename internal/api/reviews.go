package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/metinatakli/cinescope-autotests/internal/requester"
)

type ReviewsAPI struct {
	r *requester.Requester
}

func NewReviewsAPI(session *requester.Session, baseURL string, logger *slog.Logger) *ReviewsAPI {
	return &ReviewsAPI{r: requester.New(session, baseURL, logger)}
}

func (rv *ReviewsAPI) GetReviews(ctx context.Context, movieID int, expect ...int) (*requester.Response, error) {
	return rv.r.Send(ctx, requester.Request{
		Method:   http.MethodGet,
		Endpoint: moviePath(movieID) + "/reviews",
		Expect:   orDefault(expect, http.StatusOK),
	})
}

func (rv *ReviewsAPI) CreateReview(ctx context.Context, movieID int, payload any, expect ...int) (*requester.Response, error) {
	return rv.r.Send(ctx, requester.Request{
		Method:   http.MethodPost,
		Endpoint: moviePath(movieID) + "/reviews",
		Body:     payload,
		Expect:   orDefault(expect, http.StatusCreated),
	})
}

// DeleteReview removes the review userID left on a movie. Deleting another
// user's review needs an ADMIN or SUPER_ADMIN session.
func (rv *ReviewsAPI) DeleteReview(ctx context.Context, movieID int, userID string, expect ...int) (*requester.Response, error) {
	return rv.r.Send(ctx, requester.Request{
		Method:   http.MethodDelete,
		Endpoint: moviePath(movieID) + "/reviews",
		Query:    url.Values{"userId": {userID}},
		Expect:   orDefault(expect, http.StatusOK),
	})
}

func (rv *ReviewsAPI) CleanUpReview(ctx context.Context, movieID int, userID string) error {
	_, err := rv.DeleteReview(ctx, movieID, userID, http.StatusOK, http.StatusNotFound)
	return err
}
