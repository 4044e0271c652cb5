package stub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/metinatakli/cinescope-autotests/internal/datagen"
	"github.com/metinatakli/cinescope-autotests/internal/domain"
	"github.com/metinatakli/cinescope-autotests/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var testAdmin = domain.Credentials{Email: "admin@cinescope.test", Password: "Sup3rSecret"}

type harness struct {
	t      *testing.T
	server *Server
	h      http.Handler
}

func newHarness(t *testing.T, seedMovies int) *harness {
	t.Helper()

	s, err := New(Options{SuperAdmin: testAdmin, Secret: []byte("test-secret"), SeedMovies: seedMovies})
	require.NoError(t, err)

	return &harness{t: t, server: s, h: s.Routes()}
}

func (h *harness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	h.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.h.ServeHTTP(rec, req)

	return rec
}

func (h *harness) login(creds domain.Credentials) models.LoginResponse {
	h.t.Helper()

	rec := h.do(http.MethodPost, "/login", "", models.LoginRequest{Email: creds.Email, Password: creds.Password})
	require.Equal(h.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.LoginResponse
	decode(h.t, rec, &resp)

	return resp
}

// userToken registers a fresh USER and returns its token.
func (h *harness) userToken() (string, models.RegisterUserResponse) {
	h.t.Helper()

	payload := datagen.RegistrationUser()

	rec := h.do(http.MethodPost, "/register", "", payload)
	require.Equal(h.t, http.StatusCreated, rec.Code, rec.Body.String())

	var user models.RegisterUserResponse
	decode(h.t, rec, &user)

	return h.login(payload.Credentials()).AccessToken, user
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestNew_RequiresSuperAdmin(t *testing.T) {
	_, err := New(Options{})
	require.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestRoutes_TracesRequests(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	s, err := New(Options{SuperAdmin: testAdmin, Secret: []byte("test-secret"), SeedMovies: 1, TracerProvider: tp})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movies/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Name(), "/movies/")
}

func TestRegister(t *testing.T) {
	h := newHarness(t, 0)
	payload := datagen.RegistrationUser()

	rec := h.do(http.MethodPost, "/register", "", payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var user models.RegisterUserResponse
	decode(t, rec, &user)
	require.NoError(t, user.Validate())
	assert.Equal(t, payload.Email, user.Email)
	assert.Equal(t, domain.Roles{domain.RoleUser}, user.Roles)

	rec = h.do(http.MethodPost, "/register", "", payload)
	require.Equal(t, http.StatusConflict, rec.Code)

	var apiErr models.APIError
	decode(t, rec, &apiErr)
	assert.Equal(t, "Conflict", apiErr.Error)
}

func TestRegister_Validation(t *testing.T) {
	h := newHarness(t, 0)

	payload := datagen.RegistrationUser()
	payload.PasswordRepeat = payload.Password + "x"

	rec := h.do(http.MethodPost, "/register", "", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr models.APIError
	decode(t, rec, &apiErr)
	assert.Contains(t, apiErr.MessageText(), "Passwords do not match")
}

func TestLogin(t *testing.T) {
	h := newHarness(t, 0)

	resp := h.login(testAdmin)
	require.NoError(t, resp.Validate())
	assert.Equal(t, domain.Roles{domain.RoleSuperAdmin}, resp.User.Roles)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Positive(t, resp.ExpiresIn)

	tests := []struct {
		name  string
		creds models.LoginRequest
	}{
		{name: "wrong password", creds: models.LoginRequest{Email: testAdmin.Email, Password: "Wrong1234"}},
		{name: "unknown user", creds: models.LoginRequest{Email: datagen.Email(), Password: "Passw0rd1"}},
		{name: "empty password", creds: models.LoginRequest{Email: testAdmin.Email}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := h.do(http.MethodPost, "/login", "", tt.creds)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestLogin_BannedUser(t *testing.T) {
	h := newHarness(t, 0)

	banned := &domain.User{Email: "banned@cinescope.test", FullName: "Banned", Roles: domain.Roles{domain.RoleUser}, Banned: true}
	require.NoError(t, banned.Password.Set("Passw0rd1"))
	require.NoError(t, h.server.store.createUser(banned))

	rec := h.do(http.MethodPost, "/login", "", models.LoginRequest{Email: banned.Email, Password: "Passw0rd1"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	var apiErr models.APIError
	decode(t, rec, &apiErr)
	assert.Equal(t, "Forbidden", apiErr.Error)
}

func TestCheckCredentials(t *testing.T) {
	h := newHarness(t, 0)

	user, err := h.server.checkCredentials(models.LoginRequest{Email: " ADMIN@cinescope.test ", Password: testAdmin.Password})
	require.NoError(t, err)
	assert.Equal(t, testAdmin.Email, user.Email)

	for _, in := range []models.LoginRequest{
		{Email: testAdmin.Email, Password: "Wrong1234"},
		{Email: datagen.Email(), Password: "Passw0rd1"},
		{Email: testAdmin.Email},
	} {
		_, err := h.server.checkCredentials(in)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials, in.Email)
	}
}

func TestUsers_RoleChecks(t *testing.T) {
	h := newHarness(t, 0)
	adminToken := h.login(testAdmin).AccessToken
	userToken, user := h.userToken()

	rec := h.do(http.MethodGet, "/user/"+user.ID, userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(http.MethodGet, "/user/"+user.ID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(http.MethodGet, "/user/"+user.Email, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.User
	decode(t, rec, &got)
	assert.Equal(t, user.ID, got.ID)

	rec = h.do(http.MethodDelete, "/user/"+user.ID, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodDelete, "/user/"+user.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// the deleted user's token no longer authenticates
	rec = h.do(http.MethodPost, "/movies/1/reviews", userToken, datagen.Review())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateUser_AsSuperAdmin(t *testing.T) {
	h := newHarness(t, 0)
	adminToken := h.login(testAdmin).AccessToken

	payload := datagen.UserCreate(domain.RoleAdmin)

	rec := h.do(http.MethodPost, "/user", adminToken, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.User
	decode(t, rec, &created)
	assert.Equal(t, domain.Roles{domain.RoleAdmin}, created.Roles)
	assert.True(t, created.Verified)

	adminCreds := domain.Credentials{Email: payload.Email, Password: payload.Password}
	rec = h.do(http.MethodPost, "/user", h.login(adminCreds).AccessToken, datagen.UserCreate())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMovies_CRUD(t *testing.T) {
	h := newHarness(t, 0)
	adminToken := h.login(testAdmin).AccessToken
	userToken, _ := h.userToken()

	payload := datagen.Movie()

	rec := h.do(http.MethodPost, "/movies", userToken, payload)
	require.Equal(t, http.StatusForbidden, rec.Code)

	var forbidden models.APIError
	decode(t, rec, &forbidden)
	assert.Equal(t, models.APIError{Message: "Forbidden resource", Error: "Forbidden", StatusCode: 403}, forbidden)

	rec = h.do(http.MethodPost, "/movies", adminToken, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var movie models.Movie
	decode(t, rec, &movie)
	require.NoError(t, movie.Validate())
	assert.Equal(t, payload.Name, movie.Name)

	rec = h.do(http.MethodPost, "/movies", adminToken, payload)
	assert.Equal(t, http.StatusConflict, rec.Code)

	path := fmt.Sprintf("/movies/%d", movie.ID)

	update := datagen.MovieUpdate()
	rec = h.do(http.MethodPatch, path, adminToken, update)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.Movie
	decode(t, rec, &updated)
	assert.Equal(t, update.Name, updated.Name)
	assert.Equal(t, update.Price, updated.Price)
	assert.Equal(t, update.Location, updated.Location)

	rec = h.do(http.MethodDelete, path, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodDelete, path, adminToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var notFound models.APIError
	decode(t, rec, &notFound)
	assert.Equal(t, "Фильм не найден", notFound.MessageText())
	assert.Equal(t, "Not Found", notFound.Error)
}

func TestGetMovie_InvalidIDs(t *testing.T) {
	h := newHarness(t, 1)

	for _, id := range []string{"0", "-1", "abc", "999999"} {
		rec := h.do(http.MethodGet, "/movies/"+id, "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, id)
	}

	rec := h.do(http.MethodGet, "/movies/1", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListMovies_FiltersAndPagination(t *testing.T) {
	h := newHarness(t, 30)

	rec := h.do(http.MethodGet, "/movies?pageSize=7&page=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list models.MovieList
	decode(t, rec, &list)
	require.NoError(t, list.Validate())
	assert.Len(t, list.Movies, 7)
	assert.Equal(t, 2, list.Page)
	assert.Equal(t, 7, list.PageSize)
	assert.Equal(t, 30, list.Count)
	assert.Equal(t, 5, list.PageCount)

	rec = h.do(http.MethodGet, "/movies?location=MSK&published=true&pageSize=20", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &list)
	for _, m := range list.Movies {
		assert.Equal(t, domain.LocationMSK, m.Location)
		assert.True(t, m.Published)
	}

	rec = h.do(http.MethodGet, "/movies?minPrice=300&maxPrice=600&pageSize=20", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &list)
	for _, m := range list.Movies {
		assert.GreaterOrEqual(t, m.Price, 300)
		assert.LessOrEqual(t, m.Price, 600)
	}

	rec = h.do(http.MethodGet, "/movies?page=922337203685477582&pageSize=10", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var beyond models.MovieList
	decode(t, rec, &beyond)
	assert.Empty(t, beyond.Movies)
	assert.Equal(t, 30, beyond.Count)

	for _, q := range []string{"pageSize=0", "pageSize=21", "page=0", "location=NSK", "published=maybe", "genreId=9"} {
		rec := h.do(http.MethodGet, "/movies?"+q, "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestReviews(t *testing.T) {
	h := newHarness(t, 0)
	adminToken := h.login(testAdmin).AccessToken
	userToken, user := h.userToken()

	rec := h.do(http.MethodPost, "/movies", adminToken, datagen.Movie())
	require.Equal(t, http.StatusCreated, rec.Code)

	var movie models.Movie
	decode(t, rec, &movie)
	path := fmt.Sprintf("/movies/%d/reviews", movie.ID)

	review := models.ReviewCreateRequest{Rating: 4, Text: "Отличный фильм"}

	rec = h.do(http.MethodPost, path, "", review)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(http.MethodPost, path, userToken, review)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = h.do(http.MethodPost, path, userToken, review)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = h.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var reviews []models.Review
	decode(t, rec, &reviews)
	require.Len(t, reviews, 1)
	assert.Equal(t, user.ID, reviews[0].UserID)
	assert.Equal(t, user.FullName, reviews[0].User.FullName)

	rec = h.do(http.MethodGet, fmt.Sprintf("/movies/%d", movie.ID), "", nil)
	decode(t, rec, &movie)
	assert.InDelta(t, 4.0, movie.Rating, 0.001)

	rec = h.do(http.MethodDelete, path+"?userId="+user.ID, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodDelete, path+"?userId="+user.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotFoundRoute(t *testing.T) {
	h := newHarness(t, 0)

	rec := h.do(http.MethodGet, "/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(http.MethodGet, "/healthcheck", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
