package models

import (
	"github.com/metinatakli/cinescope-autotests/internal/domain"
	"github.com/metinatakli/cinescope-autotests/internal/validator"
)

type MovieCreateRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	ImageURL    string          `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Price       int             `json:"price" validate:"gt=0"`
	Description string          `json:"description"`
	Location    domain.Location `json:"location" validate:"location"`
	Published   bool            `json:"published"`
	GenreID     int             `json:"genreId" validate:"genre"`
}

func (r *MovieCreateRequest) Validate() error {
	return validator.Check(validate, r)
}

// MovieUpdateRequest is sent with PATCH; zero fields are omitted.
type MovieUpdateRequest struct {
	Name        string          `json:"name,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Price       int             `json:"price,omitempty" validate:"omitempty,gt=0"`
	Description string          `json:"description,omitempty"`
	Location    domain.Location `json:"location,omitempty" validate:"omitempty,location"`
	Published   *bool           `json:"published,omitempty"`
	GenreID     int             `json:"genreId,omitempty" validate:"omitempty,genre"`
}

func (r *MovieUpdateRequest) Validate() error {
	return validator.Check(validate, r)
}

type Genre struct {
	Name string `json:"name"`
}

type Movie struct {
	ID          int             `json:"id" validate:"gt=0"`
	Name        string          `json:"name" validate:"required"`
	Price       int             `json:"price" validate:"gt=0"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	Location    domain.Location `json:"location" validate:"location"`
	Published   bool            `json:"published"`
	Rating      float64         `json:"rating" validate:"rating"`
	GenreID     int             `json:"genreId" validate:"genre"`
	CreatedAt   string          `json:"createdAt" validate:"iso8601"`
	Genre       *Genre          `json:"genre,omitempty"`
	Reviews     []Review        `json:"reviews,omitempty"`
}

func (m *Movie) Validate() error {
	return validator.Check(validate, m)
}

type MovieList struct {
	Movies    []Movie `json:"movies" validate:"dive"`
	Count     int     `json:"count" validate:"gte=0"`
	Page      int     `json:"page" validate:"gte=1"`
	PageSize  int     `json:"pageSize" validate:"gte=1"`
	PageCount int     `json:"pageCount" validate:"gte=0"`
}

func (l *MovieList) Validate() error {
	return validator.Check(validate, l)
}
