package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/metinatakli/cinescope-autotests/internal/domain"
	"github.com/metinatakli/cinescope-autotests/internal/models"
	"github.com/metinatakli/cinescope-autotests/internal/requester"
)

// LoginStatuses is the default accepted set for POST /login. The dev auth
// service has answered both 200 and 201 over time.
var LoginStatuses = []int{http.StatusOK, http.StatusCreated}

type AuthAPI struct {
	r *requester.Requester
}

func NewAuthAPI(session *requester.Session, baseURL string, logger *slog.Logger) *AuthAPI {
	return &AuthAPI{r: requester.New(session, baseURL, logger)}
}

func (a *AuthAPI) Register(ctx context.Context, payload any, expect ...int) (*requester.Response, error) {
	return a.r.Send(ctx, requester.Request{
		Method:   http.MethodPost,
		Endpoint: "/register",
		Body:     payload,
		Expect:   orDefault(expect, http.StatusCreated),
	})
}

func (a *AuthAPI) Login(ctx context.Context, payload any, expect ...int) (*requester.Response, error) {
	if len(expect) == 0 {
		expect = LoginStatuses
	}

	return a.r.Send(ctx, requester.Request{
		Method:   http.MethodPost,
		Endpoint: "/login",
		Body:     payload,
		Expect:   expect,
	})
}

// Authenticate logs in and installs the access token on the shared session,
// so every client of the same manager acts as this identity.
func (a *AuthAPI) Authenticate(ctx context.Context, creds domain.Credentials) (*models.LoginResponse, error) {
	req, err := models.NewLoginRequest(creds)
	if err != nil {
		return nil, err
	}

	res, err := a.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	var login models.LoginResponse
	if err := res.JSON(&login); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}

	if err := login.Validate(); err != nil {
		return nil, fmt.Errorf("login response: %w", err)
	}

	a.r.Session().SetBearer(login.AccessToken)

	return &login, nil
}
