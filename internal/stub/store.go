package stub

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/cinescope-autotests/internal/domain"
)

// store keeps the stub's state in memory. Every method is safe for
// concurrent use.
type store struct {
	mu sync.RWMutex

	users   map[string]*domain.User
	emails  map[string]string
	movies  map[int]*domain.Movie
	reviews map[int][]*domain.Review
	nextID  int
}

func newStore() *store {
	return &store{
		users:   make(map[string]*domain.User),
		emails:  make(map[string]string),
		movies:  make(map[int]*domain.Movie),
		reviews: make(map[int][]*domain.Review),
		nextID:  1,
	}
}

func (s *store) createUser(u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(u.Email)
	if _, ok := s.emails[email]; ok {
		return domain.ErrUserAlreadyExists
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = email
	u.CreatedAt = time.Now().UTC()

	s.users[u.ID] = u
	s.emails[email] = u.ID

	return nil
}

// user looks a user up by id, falling back to email.
func (s *store) user(idOrEmail string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.users[idOrEmail]; ok {
		return u, nil
	}

	if id, ok := s.emails[strings.ToLower(idOrEmail)]; ok {
		return s.users[id], nil
	}

	return nil, domain.ErrRecordNotFound
}

func (s *store) deleteUser(id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	delete(s.users, id)
	delete(s.emails, u.Email)

	for movieID, list := range s.reviews {
		s.reviews[movieID] = slices.DeleteFunc(list, func(r *domain.Review) bool { return r.UserID == id })
	}

	return u, nil
}

func (s *store) createMovie(m *domain.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.movies {
		if existing.Name == m.Name {
			return errMovieExists
		}
	}

	m.ID = s.nextID
	m.CreatedAt = time.Now().UTC()
	s.nextID++

	s.movies[m.ID] = m

	return nil
}

func (s *store) movie(id int) (*domain.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.movies[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	copied := *m
	return &copied, nil
}

func (s *store) updateMovie(id int, apply func(*domain.Movie)) (*domain.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.movies[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	apply(m)
	now := time.Now().UTC()
	m.UpdatedAt = &now

	copied := *m
	return &copied, nil
}

func (s *store) deleteMovie(id int) (*domain.Movie, []*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.movies[id]
	if !ok {
		return nil, nil, domain.ErrRecordNotFound
	}

	reviews := s.reviews[id]
	delete(s.movies, id)
	delete(s.reviews, id)

	return m, reviews, nil
}

// listMovies returns one page of the movies matching filters, newest first,
// and the total number of matches.
func (s *store) listMovies(filters domain.MovieFilters) ([]*domain.Movie, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		if filters.Match(m) {
			copied := *m
			matched = append(matched, &copied)
		}
	}

	slices.SortFunc(matched, func(a, b *domain.Movie) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})

	start, end := filters.Window(len(matched))

	return matched[start:end], len(matched)
}

func (s *store) addReview(r *domain.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.movies[r.MovieID]; !ok {
		return domain.ErrRecordNotFound
	}

	for _, existing := range s.reviews[r.MovieID] {
		if existing.UserID == r.UserID {
			return errReviewExists
		}
	}

	r.CreatedAt = time.Now().UTC()
	s.reviews[r.MovieID] = append(s.reviews[r.MovieID], r)
	s.recomputeRating(r.MovieID)

	return nil
}

func (s *store) movieReviews(movieID int) ([]*domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.movies[movieID]; !ok {
		return nil, domain.ErrRecordNotFound
	}

	out := make([]*domain.Review, 0, len(s.reviews[movieID]))
	for _, r := range s.reviews[movieID] {
		if !r.Hidden {
			copied := *r
			out = append(out, &copied)
		}
	}

	return out, nil
}

func (s *store) deleteReview(movieID int, userID string) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.reviews[movieID]
	for i, r := range list {
		if r.UserID == userID {
			s.reviews[movieID] = slices.Delete(list, i, i+1)
			s.recomputeRating(movieID)
			return r, nil
		}
	}

	return nil, domain.ErrRecordNotFound
}

// recomputeRating must be called with s.mu held.
func (s *store) recomputeRating(movieID int) {
	m, ok := s.movies[movieID]
	if !ok {
		return
	}

	list := s.reviews[movieID]
	if len(list) == 0 {
		m.Rating = 0
		return
	}

	total := 0
	for _, r := range list {
		total += r.Rating
	}

	m.Rating = float64(total) / float64(len(list))
}
