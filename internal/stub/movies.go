package stub

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/cinescope-autotests/internal/domain"
	"github.com/metinatakli/cinescope-autotests/internal/models"
)

func (s *Server) listMovies(w http.ResponseWriter, r *http.Request) {
	filters, err := parseMovieFilters(r.URL.Query())
	if err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	movies, total := s.store.listMovies(filters)
	metadata := domain.NewMetadata(total, filters.Page, filters.PageSize)

	resp := models.MovieList{
		Movies:    make([]models.Movie, 0, len(movies)),
		Count:     metadata.TotalRecords,
		Page:      metadata.CurrentPage,
		PageSize:  metadata.PageSize,
		PageCount: metadata.LastPage,
	}
	for _, m := range movies {
		resp.Movies = append(resp.Movies, toMovieResponse(m))
	}

	s.writeJSON(w, r, http.StatusOK, resp)
}

func parseMovieFilters(q url.Values) (domain.MovieFilters, error) {
	f := domain.MovieFilters{
		Pagination: domain.Pagination{Page: domain.DefaultPage, PageSize: domain.DefaultPageSize},
	}

	var err error

	if f.Page, err = queryInt(q, "page", domain.DefaultPage, 1, 0); err != nil {
		return f, err
	}
	if f.PageSize, err = queryInt(q, "pageSize", domain.DefaultPageSize, 1, domain.MaxPageSize); err != nil {
		return f, err
	}
	if f.GenreID, err = queryInt(q, "genreId", 0, domain.MinGenreID, domain.MaxGenreID); err != nil {
		return f, err
	}
	if f.MinPrice, err = queryInt(q, "minPrice", 0, 1, 0); err != nil {
		return f, err
	}
	if f.MaxPrice, err = queryInt(q, "maxPrice", 0, 1, 0); err != nil {
		return f, err
	}

	if v := q.Get("location"); v != "" {
		loc := domain.Location(v)
		if !loc.Valid() {
			return f, fmt.Errorf("location must be one of the following values: %s, %s", domain.LocationMSK, domain.LocationSPB)
		}
		f.Location = loc
	}

	if v := q.Get("published"); v != "" {
		published, err := strconv.ParseBool(v)
		if err != nil {
			return f, errors.New("published must be a boolean value")
		}
		f.Published = &published
	}

	if f.MinPrice != 0 && f.MaxPrice != 0 && f.MinPrice > f.MaxPrice {
		return f, errors.New("minPrice must not be greater than maxPrice")
	}

	return f, nil
}

// queryInt reads an integer parameter bounded by [lo, hi]; hi == 0 means
// no upper bound.
func queryInt(q url.Values, key string, def, lo, hi int) (int, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer number", key)
	}

	if n < lo {
		return 0, fmt.Errorf("%s must not be less than %d", key, lo)
	}
	if hi != 0 && n > hi {
		return 0, fmt.Errorf("%s must not be greater than %d", key, hi)
	}

	return n, nil
}

// movieID returns false for anything that cannot name a stored movie, so
// malformed ids get the same 404 as missing ones.
func movieID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "movieId"))
	if err != nil || id < 1 {
		return 0, false
	}

	return id, true
}

func (s *Server) getMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		s.notFoundResponse(w, r, msgMovieNotFound)
		return
	}

	movie, err := s.store.movie(id)
	if err != nil {
		s.notFoundResponse(w, r, msgMovieNotFound)
		return
	}

	reviews, _ := s.store.movieReviews(id)

	s.writeJSON(w, r, http.StatusOK, toMovieDetail(movie, reviews))
}

func (s *Server) createMovie(w http.ResponseWriter, r *http.Request) {
	var input models.MovieCreateRequest

	if !s.readInput(w, r, &input) {
		return
	}

	movie := &domain.Movie{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Location:    input.Location,
		Published:   input.Published,
		GenreID:     input.GenreID,
	}

	if err := s.store.createMovie(movie); err != nil {
		switch {
		case errors.Is(err, errMovieExists):
			s.conflictResponse(w, r, msgMovieExists)
		default:
			s.serverErrorResponse(w, r, err)
		}
		return
	}

	s.writeJSON(w, r, http.StatusCreated, toMovieResponse(movie))
}

func (s *Server) updateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		s.notFoundResponse(w, r, msgMovieNotFound)
		return
	}

	var input models.MovieUpdateRequest

	if !s.readInput(w, r, &input) {
		return
	}

	movie, err := s.store.updateMovie(id, func(m *domain.Movie) {
		if input.Name != "" {
			m.Name = input.Name
		}
		if input.ImageURL != "" {
			m.ImageURL = input.ImageURL
		}
		if input.Price != 0 {
			m.Price = input.Price
		}
		if input.Description != "" {
			m.Description = input.Description
		}
		if input.Location != "" {
			m.Location = input.Location
		}
		if input.Published != nil {
			m.Published = *input.Published
		}
		if input.GenreID != 0 {
			m.GenreID = input.GenreID
		}
	})
	if err != nil {
		s.notFoundResponse(w, r, msgMovieNotFound)
		return
	}

	s.writeJSON(w, r, http.StatusOK, toMovieResponse(movie))
}

func (s *Server) deleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		s.notFoundResponse(w, r, msgMovieNotFound)
		return
	}

	movie, reviews, err := s.store.deleteMovie(id)
	if err != nil {
		s.notFoundResponse(w, r, msgMovieNotFound)
		return
	}

	s.writeJSON(w, r, http.StatusOK, toMovieDetail(movie, reviews))
}
