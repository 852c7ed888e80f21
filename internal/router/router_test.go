package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toiletfinder/internal/auth"
	"toiletfinder/internal/handler"
	"toiletfinder/internal/logging"
)

func newTestEcho(t *testing.T) (*echo.Echo, *auth.JWTService) {
	t.Helper()
	jwtService := auth.NewJWTService("router-secret", time.Hour)
	cookies := handler.NewCookieManager("", false)

	e := echo.New()
	Register(e, logging.Discard(), jwtService, auth.NewTokenStore(nil),
		handler.NewAuthHandler(nil, cookies),
		handler.NewToiletHandler(nil, nil, cookies),
		handler.NewAPIHandler(nil, nil),
	)
	return e, jwtService
}

func TestRegister_Health(t *testing.T) {
	e, _ := newTestEcho(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestRegister_ActorResolution(t *testing.T) {
	e, jwtService := newTestEcho(t)
	token, _, err := jwtService.GenerateAccessToken(3, "carol")
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		prepare  func(*http.Request)
		status   int
		location string
	}{
		{name: "index anonymous", path: "/", prepare: func(*http.Request) {}, status: http.StatusFound, location: "/login"},
		{
			name:     "index with cookie",
			path:     "/",
			prepare:  func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: token}) },
			status:   http.StatusFound,
			location: "/main",
		},
		{name: "main anonymous", path: "/main", prepare: func(*http.Request) {}, status: http.StatusFound, location: "/login"},
		{name: "me anonymous", path: "/api/me", prepare: func(*http.Request) {}, status: http.StatusUnauthorized},
		{
			name:    "me with bearer",
			path:    "/api/me",
			prepare: func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer "+token) },
			status:  http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			tt.prepare(req)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, rec.Header().Get("Location"))
			}
		})
	}
}

func TestRegister_UnknownRoute(t *testing.T) {
	e, _ := newTestEcho(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomValidator(t *testing.T) {
	e, _ := newTestEcho(t)

	type payload struct {
		Name string `validate:"required"`
	}
	assert.Error(t, e.Validator.Validate(&payload{}))
	assert.NoError(t, e.Validator.Validate(&payload{Name: "x"}))
}
