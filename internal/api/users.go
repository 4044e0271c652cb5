package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/metinatakli/cinescope-autotests/internal/requester"
)

type UserAPI struct {
	r *requester.Requester
}

func NewUserAPI(session *requester.Session, baseURL string, logger *slog.Logger) *UserAPI {
	return &UserAPI{r: requester.New(session, baseURL, logger)}
}

// GetUser fetches a user by id or by email.
func (u *UserAPI) GetUser(ctx context.Context, idOrEmail string, expect ...int) (*requester.Response, error) {
	return u.r.Send(ctx, requester.Request{
		Method:   http.MethodGet,
		Endpoint: "/user/" + url.PathEscape(idOrEmail),
		Expect:   orDefault(expect, http.StatusOK),
	})
}

func (u *UserAPI) CreateUser(ctx context.Context, payload any, expect ...int) (*requester.Response, error) {
	return u.r.Send(ctx, requester.Request{
		Method:   http.MethodPost,
		Endpoint: "/user",
		Body:     payload,
		Expect:   orDefault(expect, http.StatusCreated),
	})
}

func (u *UserAPI) DeleteUser(ctx context.Context, id string, expect ...int) (*requester.Response, error) {
	return u.r.Send(ctx, requester.Request{
		Method:   http.MethodDelete,
		Endpoint: "/user/" + url.PathEscape(id),
		Expect:   orDefault(expect, http.StatusOK, http.StatusNoContent),
	})
}

// CleanUpUser deletes a user and treats "already gone" as success.
func (u *UserAPI) CleanUpUser(ctx context.Context, id string) error {
	_, err := u.DeleteUser(ctx, id, http.StatusOK, http.StatusNoContent, http.StatusNotFound)
	return err
}
