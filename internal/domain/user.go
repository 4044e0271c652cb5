package domain

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const passwordCost = bcrypt.DefaultCost

type Credentials struct {
	Email    string
	Password string
}

func (c Credentials) Empty() bool {
	return c.Email == "" || c.Password == ""
}

type User struct {
	ID        string
	Email     string
	FullName  string
	Password  Password
	Roles     Roles
	Verified  bool
	Banned    bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type Password struct {
	plaintext *string
	Hash      []byte
}

func (p *Password) Set(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), passwordCost)
	if err != nil {
		return err
	}

	p.plaintext = &plaintext
	p.Hash = hash

	return nil
}

func (p *Password) Matches(plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.Hash, []byte(plaintext))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}
