package models

import (
	"github.com/metinatakli/cinescope-autotests/internal/domain"
	"github.com/metinatakli/cinescope-autotests/internal/validator"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,strict_email"`
	Password string `json:"password" validate:"password_required"`
}

func NewLoginRequest(creds domain.Credentials) (LoginRequest, error) {
	req := LoginRequest{Email: creds.Email, Password: creds.Password}
	if err := req.Validate(); err != nil {
		return LoginRequest{}, err
	}

	return req, nil
}

func (r *LoginRequest) Validate() error {
	r.Email = normalizeEmail(r.Email)

	return validator.Check(validate, r)
}

type UserInLoginResponse struct {
	ID       string       `json:"id" validate:"required"`
	Email    string       `json:"email" validate:"required,strict_email"`
	FullName string       `json:"fullName" validate:"required"`
	Roles    domain.Roles `json:"roles" validate:"roles"`
}

type LoginResponse struct {
	AccessToken  string              `json:"accessToken" validate:"required"`
	RefreshToken string              `json:"refreshToken"`
	ExpiresIn    int                 `json:"expiresIn"`
	User         UserInLoginResponse `json:"user"`
}

func (r *LoginResponse) Validate() error {
	r.User.Email = normalizeEmail(r.User.Email)

	return validator.Check(validate, r)
}
