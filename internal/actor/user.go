// Package actor models a test identity together with the API session it
// authenticated.
package actor

import (
	"github.com/metinatakli/cinescope-autotests/internal/api"
	"github.com/metinatakli/cinescope-autotests/internal/domain"
)

type User struct {
	ID       string
	Email    string
	Password string
	FullName string
	Roles    domain.Roles
	API      *api.Manager
}

func (u *User) Creds() (string, string) {
	return u.Email, u.Password
}

func (u *User) Credentials() domain.Credentials {
	return domain.Credentials{Email: u.Email, Password: u.Password}
}

// Role returns the single role workflows act on.
func (u *User) Role() domain.Role {
	return u.Roles.Highest()
}

func (u *User) Close() {
	if u.API != nil {
		u.API.Close()
	}
}
