package actor

import (
	"testing"

	"github.com/metinatakli/cinescope-autotests/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestUser_Creds(t *testing.T) {
	u := &User{Email: "kek@gmail.com", Password: "Passw0rd!", Roles: domain.Roles{domain.RoleUser, domain.RoleAdmin}}

	email, password := u.Creds()
	assert.Equal(t, "kek@gmail.com", email)
	assert.Equal(t, "Passw0rd!", password)
	assert.Equal(t, domain.Credentials{Email: email, Password: password}, u.Credentials())
	assert.Equal(t, domain.RoleAdmin, u.Role())

	// closing a user without a manager is a no-op
	u.Close()
}
