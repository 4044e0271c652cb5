// Package datagen produces randomized, valid Cinescope payloads.
package datagen

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/metinatakli/cinescope-autotests/internal/domain"
	"github.com/metinatakli/cinescope-autotests/internal/models"
)

const (
	lowerLetters  = "abcdefghijklmnopqrstuvwxyz"
	upperLetters  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits        = "0123456789"
	passwordExtra = "?@#$%^&*|:"

	EmailPrefix = "kek"
	EmailDomain = "@gmail.com"
	MoviePrefix = "Фильм "
)

func Email() string {
	return EmailPrefix + String(8) + EmailDomain
}

func FullName() string {
	return gofakeit.FirstName() + " " + gofakeit.LastName()
}

// Password returns 8 to 20 characters with at least one upper case letter,
// one lower case letter and one digit.
func Password() string {
	all := lowerLetters + upperLetters + digits + passwordExtra

	chars := []byte{
		pick(upperLetters),
		pick(lowerLetters),
		pick(digits),
	}
	for range Int(5, 17) {
		chars = append(chars, pick(all))
	}

	rand.Shuffle(len(chars), func(i, j int) {
		chars[i], chars[j] = chars[j], chars[i]
	})

	return string(chars)
}

// String returns n characters from [a-z0-9].
func String(n int) string {
	var sb strings.Builder
	sb.Grow(n)

	for range n {
		sb.WriteByte(pick(lowerLetters + digits))
	}

	return sb.String()
}

// Int returns a number in [lo, hi].
func Int(lo, hi int) int {
	return lo + rand.IntN(hi-lo+1)
}

// Number returns a number with exactly n digits.
func Number(n int) int {
	if n <= 0 {
		return 0
	}
	if n == 1 {
		return Int(0, 9)
	}

	lo := 1
	for range n - 1 {
		lo *= 10
	}

	return Int(lo, lo*10-1)
}

func Location() domain.Location {
	return domain.Locations[rand.IntN(len(domain.Locations))]
}

func Bool() bool {
	return rand.IntN(2) == 1
}

func RegistrationUser(roles ...domain.Role) models.RegistrationUserData {
	if len(roles) == 0 {
		roles = domain.Roles{domain.RoleUser}
	}

	password := Password()

	return models.RegistrationUserData{
		Email:          Email(),
		FullName:       FullName(),
		Password:       password,
		PasswordRepeat: password,
		Roles:          roles,
	}
}

func UserCreate(roles ...domain.Role) models.UserCreateRequest {
	return RegistrationUser(roles...).ToCreate()
}

func Movie() models.MovieCreateRequest {
	return models.MovieCreateRequest{
		Name:        MoviePrefix + String(6),
		ImageURL:    fmt.Sprintf("https://example.com/movie%d.jpg", Int(1, 1000)),
		Price:       Int(100, 1000),
		Description: "Описание фильма " + gofakeit.Sentence(6),
		Location:    Location(),
		Published:   Bool(),
		GenreID:     Int(domain.MinGenreID, domain.MaxGenreID),
	}
}

func MovieUpdate() models.MovieUpdateRequest {
	published := Bool()

	return models.MovieUpdateRequest{
		Name:        "Обновленный фильм " + String(6),
		Price:       Int(100, 1000),
		Description: "Обновленное описание " + gofakeit.Sentence(4),
		Location:    Location(),
		Published:   &published,
		GenreID:     Int(domain.MinGenreID, domain.MaxGenreID),
	}
}

func Review() models.ReviewCreateRequest {
	return models.ReviewCreateRequest{
		Rating: Int(1, 5),
		Text:   "Тестовый отзыв " + gofakeit.Sentence(5),
	}
}

// DBUser returns an unverified USER record ready for a direct insert. The
// password hash is computed from a fresh random password.
func DBUser() (*domain.User, string, error) {
	password := Password()

	user := &domain.User{
		ID:        uuid.NewString(),
		Email:     Email(),
		FullName:  FullName(),
		Roles:     domain.Roles{domain.RoleUser},
		CreatedAt: time.Now().UTC(),
	}
	if err := user.Password.Set(password); err != nil {
		return nil, "", err
	}

	return user, password, nil
}

func DBMovie() *domain.Movie {
	payload := Movie()

	return &domain.Movie{
		Name:        payload.Name,
		Price:       payload.Price,
		Description: payload.Description,
		ImageURL:    payload.ImageURL,
		Location:    payload.Location,
		Published:   payload.Published,
		Rating:      float64(Int(0, 100)) / 10,
		GenreID:     payload.GenreID,
	}
}

func pick(set string) byte {
	return set[rand.IntN(len(set))]
}
