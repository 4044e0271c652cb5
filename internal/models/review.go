package models

import (
	"github.com/metinatakli/cinescope-autotests/internal/validator"
)

type ReviewCreateRequest struct {
	Rating int    `json:"rating" validate:"gte=1,lte=5"`
	Text   string `json:"text" validate:"required"`
}

func (r *ReviewCreateRequest) Validate() error {
	return validator.Check(validate, r)
}

type ReviewAuthor struct {
	FullName string `json:"fullName"`
}

type Review struct {
	UserID    string        `json:"userId" validate:"required"`
	Rating    int           `json:"rating" validate:"gte=1,lte=5"`
	Text      string        `json:"text"`
	Hidden    bool          `json:"hidden"`
	CreatedAt string        `json:"createdAt" validate:"omitempty,iso8601"`
	User      *ReviewAuthor `json:"user,omitempty"`
}

func (r *Review) Validate() error {
	return validator.Check(validate, r)
}
