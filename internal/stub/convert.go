package stub

import (
	"time"

	"github.com/metinatakli/cinescope-autotests/internal/domain"
	"github.com/metinatakli/cinescope-autotests/internal/models"
)

var genres = map[int]string{
	1: "Драма",
	2: "Комедия",
	3: "Боевик",
	4: "Триллер",
	5: "Ужасы",
	6: "Фантастика",
	7: "Мелодрама",
	8: "Мультфильм",
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func toRegisterResponse(u *domain.User) models.RegisterUserResponse {
	return models.RegisterUserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Verified:  u.Verified,
		Banned:    u.Banned,
		Roles:     u.Roles,
		CreatedAt: timestamp(u.CreatedAt),
	}
}

func toUserResponse(u *domain.User) models.User {
	return models.User{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Roles:     u.Roles,
		Verified:  u.Verified,
		Banned:    u.Banned,
		CreatedAt: timestamp(u.CreatedAt),
	}
}

func toMovieResponse(m *domain.Movie) models.Movie {
	out := models.Movie{
		ID:          m.ID,
		Name:        m.Name,
		Price:       m.Price,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		Location:    m.Location,
		Published:   m.Published,
		Rating:      m.Rating,
		GenreID:     m.GenreID,
		CreatedAt:   timestamp(m.CreatedAt),
	}

	if name, ok := genres[m.GenreID]; ok {
		out.Genre = &models.Genre{Name: name}
	}

	return out
}

// movieDetail is the single-movie view. Unlike list items it always carries
// the reviews array, even when empty.
type movieDetail struct {
	models.Movie
	Reviews []models.Review `json:"reviews"`
}

func toMovieDetail(m *domain.Movie, reviews []*domain.Review) movieDetail {
	out := movieDetail{
		Movie:   toMovieResponse(m),
		Reviews: make([]models.Review, 0, len(reviews)),
	}

	for _, r := range reviews {
		out.Reviews = append(out.Reviews, toReviewResponse(r))
	}

	return out
}

func toReviewResponse(r *domain.Review) models.Review {
	return models.Review{
		UserID:    r.UserID,
		Rating:    r.Rating,
		Text:      r.Text,
		Hidden:    r.Hidden,
		CreatedAt: timestamp(r.CreatedAt),
		User:      &models.ReviewAuthor{FullName: r.FullName},
	}
}
