package e2e_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/metinatakli/cinescope-autotests/internal/datagen"
	"github.com/metinatakli/cinescope-autotests/internal/domain"
	"github.com/metinatakli/cinescope-autotests/internal/fixture"
	"github.com/metinatakli/cinescope-autotests/internal/models"
	"github.com/metinatakli/cinescope-autotests/internal/requester"
	"github.com/stretchr/testify/suite"
)

type AuthTestSuite struct {
	BaseSuite
}

func TestAuthSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	suite.Run(t, new(AuthTestSuite))
}

func (s *AuthTestSuite) TestRegisterUser() {
	payload, err := models.NewRegistrationUserData("kekabc123@gmail.com", "Test User", "Passw0rd!", "Passw0rd!", domain.RoleUser)
	s.Require().NoError(err)

	// drop a leftover from an interrupted run before registering again
	leftover := fixture.NewScope(s.logger())
	s.tenv.ForgetUser(leftover, s.admin, payload.Email)
	leftover.Close(s.ctx)

	s.tenv.ForgetUser(s.scope, s.admin, payload.Email)

	m := s.tenv.NewManager()
	defer m.Close()

	res, err := m.Auth.Register(s.ctx, payload)
	s.Require().NoError(err)
	s.Equal(http.StatusCreated, res.StatusCode)

	var user models.RegisterUserResponse
	s.Require().NoError(res.JSON(&user))
	s.Require().NoError(user.Validate())

	s.NotEmpty(user.ID)
	s.Equal(payload.Email, user.Email)
	s.Contains(user.Roles, domain.RoleUser)
}

func (s *AuthTestSuite) TestRegisterUser_DuplicateEmail() {
	user, err := s.tenv.RegisteredUser(s.ctx, s.scope, s.admin)
	s.Require().NoError(err)

	payload := datagen.RegistrationUser()
	payload.Email = user.Email

	m := s.tenv.NewManager()
	defer m.Close()

	_, err = m.Auth.Register(s.ctx, payload)
	s.Require().Error(err)
	s.True(requester.IsStatus(err, http.StatusConflict), err.Error())
}

func (s *AuthTestSuite) TestLogin() {
	user, err := s.tenv.RegisteredUser(s.ctx, s.scope, s.admin)
	s.Require().NoError(err)

	m := s.tenv.NewManager()
	defer m.Close()

	login, err := m.Auth.Authenticate(s.ctx, user.Credentials())
	s.Require().NoError(err)

	s.NotEmpty(login.AccessToken)
	s.Equal(user.Email, login.User.Email)
	s.Equal(user.ID, login.User.ID)
}

func (s *AuthTestSuite) TestLogin_Rejected() {
	user, err := s.tenv.RegisteredUser(s.ctx, s.scope, s.admin)
	s.Require().NoError(err)

	scenarios := []struct {
		name    string
		payload any
		codes   []int
	}{
		{
			name:    "wrong password",
			payload: map[string]string{"email": user.Email, "password": "wrong_password_123!"},
			codes:   []int{http.StatusUnauthorized},
		},
		{
			name:    "nonexistent user",
			payload: map[string]string{"email": "nonexistent_user@example.com", "password": "some_password_123!"},
			codes:   []int{http.StatusUnauthorized, http.StatusNotFound},
		},
		{
			name:    "missing password",
			payload: map[string]string{"email": user.Email},
			codes:   []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError},
		},
	}

	for _, sc := range scenarios {
		s.Run(sc.name, func() {
			m := s.tenv.NewManager()
			defer m.Close()

			_, err := m.Auth.Login(s.ctx, sc.payload)
			s.Require().Error(err)
			s.True(requester.IsStatus(err, sc.codes...), err.Error())
		})
	}
}

func (s *AuthTestSuite) TestAuthenticate_ValidatesBeforeSending() {
	m := s.tenv.NewManager()
	defer m.Close()

	_, err := m.Auth.Authenticate(s.ctx, domain.Credentials{Email: "user@example.com"})
	s.Require().Error(err)
	s.Contains(err.Error(), "Password cannot be empty")

	var se *requester.StatusError
	s.False(errors.As(err, &se))
}
