package dbhelper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/metinatakli/cinescope-autotests/internal/domain"
)

const (
	movieColumns = `id, name, price, description, image_url, location, published, rating, genre_id, created_at, updated_at`

	searchLimit    = 10
	publishedLimit = 50
	allLimit       = 100
)

// Constraint names Postgres derives for the movies table.
const (
	moviesPkey    = "movies_pkey"
	moviesNameKey = "movies_name_key"
)

var (
	ErrMovieNameTaken = errors.New("movie name already taken")
	ErrMovieIDTaken   = errors.New("movie id already taken")
)

type MovieHelper struct {
	db DBTX
}

func NewMovieHelper(db DBTX) *MovieHelper {
	return &MovieHelper{db: db}
}

// Create inserts m, honoring a preset ID, and fills in the generated
// fields. A zero CreatedAt is set to now.
func (h *MovieHelper) Create(ctx context.Context, m *domain.Movie) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	var (
		query string
		args  = []any{m.Name, m.Price, m.Description, m.ImageURL, string(m.Location), m.Published, m.Rating, m.GenreID, m.CreatedAt}
	)

	if m.ID != 0 {
		query = `INSERT INTO movies (name, price, description, image_url, location, published, rating, genre_id, created_at, id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id`
		args = append(args, m.ID)
	} else {
		query = `INSERT INTO movies (name, price, description, image_url, location, published, rating, genre_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`
	}

	err := h.db.QueryRow(ctx, query, args...).Scan(&m.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			switch pgErr.ConstraintName {
			case moviesNameKey:
				return fmt.Errorf("%w: %s", ErrMovieNameTaken, m.Name)
			case moviesPkey:
				return fmt.Errorf("%w: %d", ErrMovieIDTaken, m.ID)
			}
		}

		return err
	}

	return nil
}

// CreateBatch inserts movies one by one and stops at the first failure.
func (h *MovieHelper) CreateBatch(ctx context.Context, movies []*domain.Movie) error {
	for i, m := range movies {
		if err := h.Create(ctx, m); err != nil {
			return fmt.Errorf("movie %d of %d: %w", i+1, len(movies), err)
		}
	}

	return nil
}

// GetByID returns nil, nil when the movie does not exist.
func (h *MovieHelper) GetByID(ctx context.Context, id int) (*domain.Movie, error) {
	return h.one(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id)
}

func (h *MovieHelper) GetByName(ctx context.Context, name string) (*domain.Movie, error) {
	return h.one(ctx, `SELECT `+movieColumns+` FROM movies WHERE name = $1 LIMIT 1`, name)
}

func (h *MovieHelper) SearchByName(ctx context.Context, term string) ([]*domain.Movie, error) {
	return h.many(ctx, `SELECT `+movieColumns+` FROM movies
		WHERE name ILIKE '%' || $1 || '%'
		LIMIT $2`, term, searchLimit)
}

func (h *MovieHelper) GetByGenre(ctx context.Context, genreID int, publishedOnly bool) ([]*domain.Movie, error) {
	return h.many(ctx, `SELECT `+movieColumns+` FROM movies
		WHERE genre_id = $1 AND (published OR NOT $2)
		ORDER BY rating DESC`, genreID, publishedOnly)
}

func (h *MovieHelper) GetPublished(ctx context.Context) ([]*domain.Movie, error) {
	return h.many(ctx, `SELECT `+movieColumns+` FROM movies
		WHERE published
		ORDER BY created_at DESC
		LIMIT $1`, publishedLimit)
}

func (h *MovieHelper) GetByPriceRange(ctx context.Context, minPrice, maxPrice int, publishedOnly bool) ([]*domain.Movie, error) {
	return h.many(ctx, `SELECT `+movieColumns+` FROM movies
		WHERE price BETWEEN $1 AND $2 AND (published OR NOT $3)
		ORDER BY price`, minPrice, maxPrice, publishedOnly)
}

func (h *MovieHelper) GetByRating(ctx context.Context, minRating, maxRating float64, publishedOnly bool) ([]*domain.Movie, error) {
	return h.many(ctx, `SELECT `+movieColumns+` FROM movies
		WHERE rating BETWEEN $1 AND $2 AND (published OR NOT $3)
		ORDER BY rating DESC`, minRating, maxRating, publishedOnly)
}

func (h *MovieHelper) GetAll(ctx context.Context) ([]*domain.Movie, error) {
	return h.many(ctx, `SELECT `+movieColumns+` FROM movies
		ORDER BY created_at DESC
		LIMIT $1`, allLimit)
}

func (h *MovieHelper) GetByLocation(ctx context.Context, location domain.Location, publishedOnly bool) ([]*domain.Movie, error) {
	return h.many(ctx, `SELECT `+movieColumns+` FROM movies
		WHERE location = $1 AND (published OR NOT $2)
		ORDER BY name`, string(location), publishedOnly)
}

// Update loads the movie, applies mutate and writes every column back.
// It returns nil, nil when the movie does not exist.
func (h *MovieHelper) Update(ctx context.Context, id int, mutate func(*domain.Movie)) (*domain.Movie, error) {
	m, err := h.GetByID(ctx, id)
	if err != nil || m == nil {
		return nil, err
	}

	mutate(m)

	now := time.Now().UTC()
	m.UpdatedAt = &now

	query := `UPDATE movies
		SET name = $1, price = $2, description = $3, image_url = $4, location = $5,
			published = $6, rating = $7, genre_id = $8, updated_at = $9
		WHERE id = $10`

	_, err = h.db.Exec(ctx, query,
		m.Name,
		m.Price,
		m.Description,
		m.ImageURL,
		string(m.Location),
		m.Published,
		m.Rating,
		m.GenreID,
		m.UpdatedAt,
		m.ID)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (h *MovieHelper) Publish(ctx context.Context, id int) (*domain.Movie, error) {
	return h.Update(ctx, id, func(m *domain.Movie) { m.Published = true })
}

func (h *MovieHelper) Unpublish(ctx context.Context, id int) (*domain.Movie, error) {
	return h.Update(ctx, id, func(m *domain.Movie) { m.Published = false })
}

func (h *MovieHelper) UpdateRating(ctx context.Context, id int, rating float64) (*domain.Movie, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, fmt.Errorf("rating %v out of range [%d, %d]", rating, domain.MinRating, domain.MaxRating)
	}

	return h.Update(ctx, id, func(m *domain.Movie) { m.Rating = rating })
}

// Delete reports whether a movie with id existed.
func (h *MovieHelper) Delete(ctx context.Context, id int) (bool, error) {
	m, err := h.GetByID(ctx, id)
	if err != nil || m == nil {
		return false, err
	}

	if _, err := h.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id); err != nil {
		return false, err
	}

	return true, nil
}

func (h *MovieHelper) Exists(ctx context.Context, id int) (bool, error) {
	return h.exists(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`, id)
}

func (h *MovieHelper) ExistsByName(ctx context.Context, name string) (bool, error) {
	return h.exists(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE name = $1)`, name)
}

func (h *MovieHelper) Count(ctx context.Context, publishedOnly bool) (int, error) {
	var n int

	err := h.db.QueryRow(ctx, `SELECT count(*) FROM movies WHERE (published OR NOT $1)`, publishedOnly).Scan(&n)
	if err != nil {
		return 0, err
	}

	return n, nil
}

// DeleteByNamePrefix removes every movie whose name starts with prefix and
// returns how many were removed.
func (h *MovieHelper) DeleteByNamePrefix(ctx context.Context, prefix string) (int64, error) {
	tag, err := h.db.Exec(ctx, `DELETE FROM movies WHERE starts_with(name, $1)`, prefix)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (h *MovieHelper) exists(ctx context.Context, query string, arg any) (bool, error) {
	var ok bool

	if err := h.db.QueryRow(ctx, query, arg).Scan(&ok); err != nil {
		return false, err
	}

	return ok, nil
}

func (h *MovieHelper) one(ctx context.Context, query string, args ...any) (*domain.Movie, error) {
	m, err := scanMovie(h.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return m, nil
}

func (h *MovieHelper) many(ctx context.Context, query string, args ...any) ([]*domain.Movie, error) {
	rows, err := h.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []*domain.Movie{}

	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}

		movies = append(movies, m)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func scanMovie(row pgx.Row) (*domain.Movie, error) {
	var (
		m        domain.Movie
		location string
	)

	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Price,
		&m.Description,
		&m.ImageURL,
		&location,
		&m.Published,
		&m.Rating,
		&m.GenreID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Location = domain.Location(location)

	return &m, nil
}
