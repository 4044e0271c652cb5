package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/metinatakli/cinescope-autotests/internal/domain"
	"github.com/metinatakli/cinescope-autotests/internal/requester"
)

// MovieParams are the GET /movies query filters. Zero values are not sent.
type MovieParams struct {
	Location  domain.Location
	Published *bool
	PageSize  int
	Page      int
	GenreID   int
	MinPrice  int
	MaxPrice  int
}

func (p MovieParams) Values() url.Values {
	q := url.Values{}

	if p.Location != "" {
		q.Set("location", string(p.Location))
	}
	if p.Published != nil {
		q.Set("published", strconv.FormatBool(*p.Published))
	}
	if p.PageSize != 0 {
		q.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	if p.Page != 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.GenreID != 0 {
		q.Set("genreId", strconv.Itoa(p.GenreID))
	}
	if p.MinPrice != 0 {
		q.Set("minPrice", strconv.Itoa(p.MinPrice))
	}
	if p.MaxPrice != 0 {
		q.Set("maxPrice", strconv.Itoa(p.MaxPrice))
	}

	return q
}

type MoviesAPI struct {
	r *requester.Requester
}

func NewMoviesAPI(session *requester.Session, baseURL string, logger *slog.Logger) *MoviesAPI {
	return &MoviesAPI{r: requester.New(session, baseURL, logger)}
}

func (m *MoviesAPI) GetMovies(ctx context.Context, params MovieParams, expect ...int) (*requester.Response, error) {
	return m.r.Send(ctx, requester.Request{
		Method:   http.MethodGet,
		Endpoint: "/movies",
		Query:    params.Values(),
		Expect:   orDefault(expect, http.StatusOK),
	})
}

func (m *MoviesAPI) GetMovie(ctx context.Context, id int, expect ...int) (*requester.Response, error) {
	return m.r.Send(ctx, requester.Request{
		Method:   http.MethodGet,
		Endpoint: moviePath(id),
		Expect:   orDefault(expect, http.StatusOK),
	})
}

func (m *MoviesAPI) CreateMovie(ctx context.Context, payload any, expect ...int) (*requester.Response, error) {
	return m.r.Send(ctx, requester.Request{
		Method:   http.MethodPost,
		Endpoint: "/movies",
		Body:     payload,
		Expect:   orDefault(expect, http.StatusCreated),
	})
}

func (m *MoviesAPI) UpdateMovie(ctx context.Context, id int, payload any, expect ...int) (*requester.Response, error) {
	return m.r.Send(ctx, requester.Request{
		Method:   http.MethodPatch,
		Endpoint: moviePath(id),
		Body:     payload,
		Expect:   orDefault(expect, http.StatusOK),
	})
}

func (m *MoviesAPI) DeleteMovie(ctx context.Context, id int, expect ...int) (*requester.Response, error) {
	return m.r.Send(ctx, requester.Request{
		Method:   http.MethodDelete,
		Endpoint: moviePath(id),
		Expect:   orDefault(expect, http.StatusOK),
	})
}

// DeleteMovieRaw sends the id path segment as given, for probing malformed
// ids such as "abc" or " ".
func (m *MoviesAPI) DeleteMovieRaw(ctx context.Context, id string, expect ...int) (*requester.Response, error) {
	return m.r.Send(ctx, requester.Request{
		Method:   http.MethodDelete,
		Endpoint: "/movies/" + url.PathEscape(id),
		Expect:   orDefault(expect, http.StatusOK),
	})
}

// CleanUpMovie deletes a movie and treats "already gone" as success.
func (m *MoviesAPI) CleanUpMovie(ctx context.Context, id int) error {
	_, err := m.DeleteMovie(ctx, id, http.StatusOK, http.StatusNotFound)
	return err
}

func moviePath(id int) string {
	return "/movies/" + strconv.Itoa(id)
}
