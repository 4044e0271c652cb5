package domain

import "errors"

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrRecordNotFound     = errors.New("record not found")
	ErrUnknownRole        = errors.New("unknown role")
	ErrMissingCredentials = errors.New("credentials are not configured")
	ErrForbidden          = errors.New("forbidden resource")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
