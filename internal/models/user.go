package models

import (
	"strings"

	"github.com/metinatakli/cinescope-autotests/internal/domain"
	"github.com/metinatakli/cinescope-autotests/internal/validator"
)

type RegistrationUserData struct {
	Email          string       `json:"email" validate:"required,strict_email"`
	FullName       string       `json:"fullName" validate:"required,min=1,max=100"`
	Password       string       `json:"password" validate:"password_len,max=50,password_digits,password_letters,password_upper"`
	PasswordRepeat string       `json:"passwordRepeat" validate:"eqfield=Password"`
	Roles          domain.Roles `json:"roles" validate:"roles"`
	Verified       *bool        `json:"verified,omitempty"`
	Banned         *bool        `json:"banned,omitempty"`
}

// NewRegistrationUserData builds and validates a registration payload.
func NewRegistrationUserData(email, fullName, password, passwordRepeat string, roles ...domain.Role) (RegistrationUserData, error) {
	data := RegistrationUserData{
		Email:          email,
		FullName:       fullName,
		Password:       password,
		PasswordRepeat: passwordRepeat,
		Roles:          roles,
	}

	if err := data.Validate(); err != nil {
		return RegistrationUserData{}, err
	}

	return data, nil
}

func (r *RegistrationUserData) Validate() error {
	r.Email = normalizeEmail(r.Email)
	r.FullName = strings.TrimSpace(r.FullName)

	return validator.Check(validate, r)
}

func (r RegistrationUserData) Credentials() domain.Credentials {
	return domain.Credentials{Email: r.Email, Password: r.Password}
}

// ToCreate converts the payload into the admin user-creation request,
// dropping the password confirmation.
func (r RegistrationUserData) ToCreate() UserCreateRequest {
	return UserCreateRequest{
		Email:    r.Email,
		FullName: r.FullName,
		Password: r.Password,
		Roles:    r.Roles,
		Verified: valueOr(r.Verified, true),
		Banned:   valueOr(r.Banned, false),
	}
}

type UserCreateRequest struct {
	Email    string       `json:"email" validate:"required,strict_email"`
	FullName string       `json:"fullName" validate:"required,min=1,max=100"`
	Password string       `json:"password" validate:"password_len,max=50,password_digits,password_letters,password_upper"`
	Roles    domain.Roles `json:"roles" validate:"roles"`
	Verified bool         `json:"verified"`
	Banned   bool         `json:"banned"`
}

func (r *UserCreateRequest) Validate() error {
	r.Email = normalizeEmail(r.Email)
	r.FullName = strings.TrimSpace(r.FullName)

	return validator.Check(validate, r)
}

type RegisterUserResponse struct {
	ID        string       `json:"id" validate:"required"`
	Email     string       `json:"email" validate:"required,strict_email"`
	FullName  string       `json:"fullName" validate:"required,min=1,max=100"`
	Verified  bool         `json:"verified"`
	Banned    bool         `json:"banned"`
	Roles     domain.Roles `json:"roles" validate:"roles"`
	CreatedAt string       `json:"createdAt" validate:"iso8601"`
}

func (r *RegisterUserResponse) Validate() error {
	r.Email = normalizeEmail(r.Email)

	return validator.Check(validate, r)
}

// User is the admin view of an account returned by GET /user/{id}.
type User struct {
	ID        string       `json:"id" validate:"required"`
	Email     string       `json:"email" validate:"required,strict_email"`
	FullName  string       `json:"fullName" validate:"required"`
	Roles     domain.Roles `json:"roles" validate:"roles"`
	Verified  bool         `json:"verified"`
	Banned    bool         `json:"banned"`
	CreatedAt string       `json:"createdAt" validate:"omitempty,iso8601"`
}

func (u *User) Validate() error {
	u.Email = normalizeEmail(u.Email)

	return validator.Check(validate, u)
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}

	return *p
}
