// Package models holds the request and response payloads exchanged with the
// Cinescope auth and movies services, together with the rules a payload must
// satisfy before it is sent or after it is received.
package models

import (
	"strings"

	"github.com/metinatakli/cinescope-autotests/internal/validator"
)

var validate = validator.NewValidator()

// Validatable is implemented by every payload in this package.
type Validatable interface {
	Validate() error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
