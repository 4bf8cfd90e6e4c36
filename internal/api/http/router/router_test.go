package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/okunev/usermgmt/internal/api/http/context"
	"github.com/okunev/usermgmt/internal/mocks"
	"github.com/okunev/usermgmt/internal/model"
	"github.com/okunev/usermgmt/internal/testutil"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestRouter(t *testing.T, pinger Pinger) (http.Handler, *mocks.AuthService, *mocks.UserService) {
	authService := mocks.NewAuthService(t)
	userService := mocks.NewUserService(t)
	r := New(authService, userService, httpctx.NewManager(), pinger, testutil.MakeNoopLogger())
	return r.Register(), authService, userService
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		h, _, _ := newTestRouter(t, pingerFunc(func(context.Context) error { return nil }))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("database down", func(t *testing.T) {
		h, _, _ := newTestRouter(t, pingerFunc(func(context.Context) error { return errors.New("down") }))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestRouter_OpenRoutes(t *testing.T) {
	t.Parallel()

	h, authService, userService := newTestRouter(t, nil)

	authService.On("Login", mock.Anything, "alice", "password123").Return("token-123", nil)
	userService.On("Register", mock.Anything, mock.Anything).
		Return(model.User{ID: uuid.New(), Username: "bob"}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/token",
		strings.NewReader(`{"username":"alice","password":"password123"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "token-123")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/users",
		strings.NewReader(`{"username":"bob","email":"bob@example.com","password":"password123"}`)))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	h, _, _ := newTestRouter(t, nil)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/users"},
		{http.MethodGet, "/api/v1/users/me"},
		{http.MethodGet, "/api/v1/users/" + uuid.NewString()},
		{http.MethodPut, "/api/v1/users/" + uuid.NewString()},
		{http.MethodDelete, "/api/v1/users/" + uuid.NewString()},
		{http.MethodPut, "/api/v1/users/" + uuid.NewString() + "/avatar"},
		{http.MethodGet, "/api/v1/users/" + uuid.NewString() + "/avatar"},
	}

	for _, p := range paths {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(p.method, p.path, nil))

		assert.Equalf(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	}
}

func TestRouter_ProtectedRouteWithToken(t *testing.T) {
	t.Parallel()

	h, authService, userService := newTestRouter(t, nil)

	principal := model.User{ID: uuid.New(), Username: "alice", IsActive: true}
	authService.On("ResolvePrincipal", mock.Anything, "good-token").Return(principal, nil)
	userService.On("List", mock.Anything, 0, 100).Return([]model.User{principal}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice")
}

func TestRouter_MeUsesPrincipalFromToken(t *testing.T) {
	t.Parallel()

	h, authService, _ := newTestRouter(t, nil)

	principal := model.User{ID: uuid.New(), Username: "carol", IsActive: true}
	authService.On("ResolvePrincipal", mock.Anything, "carol-token").Return(principal, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer carol-token")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), principal.ID.String())
}
