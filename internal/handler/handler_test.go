package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"toiletfinder/internal/auth"
	apperrors "toiletfinder/internal/errors"
	"toiletfinder/internal/middleware"
	"toiletfinder/internal/model"
	"toiletfinder/internal/service"
)

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, username, email, password string) (*model.User, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, identity *auth.Identity) {
	m.Called(ctx, identity)
}

// MockToiletService is a mock implementation of ToiletService.
type MockToiletService struct {
	mock.Mock
}

func (m *MockToiletService) AddToilet(ctx context.Context, actor *auth.Identity, in service.AddToiletInput) (*model.Toilet, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Toilet), args.Error(1)
}

func (m *MockToiletService) AddReview(ctx context.Context, actor *auth.Identity, in service.AddReviewInput) (*model.Review, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

// MockQueryService is a mock implementation of QueryService.
type MockQueryService struct {
	mock.Mock
}

func (m *MockQueryService) ListToilets(ctx context.Context, actor *auth.Identity) ([]model.ToiletSummary, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ToiletSummary), args.Error(1)
}

func (m *MockQueryService) GetToilet(ctx context.Context, actor *auth.Identity, id uint) (*model.ToiletDetail, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ToiletDetail), args.Error(1)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

var alice = &auth.Identity{UserID: 1, Username: "alice", TokenID: "jti-1", ExpiresAt: time.Now().Add(time.Hour)}

// newTestServer registers every route with the actor fixed for all requests.
func newTestServer(actor *auth.Identity, authSvc *MockAuthService, toiletSvc *MockToiletService, querySvc *MockQueryService) *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if actor != nil {
				middleware.SetActor(c, actor)
			}
			return next(c)
		}
	})

	cookies := NewCookieManager("", false)
	authHandler := NewAuthHandler(authSvc, cookies)
	toiletHandler := NewToiletHandler(toiletSvc, querySvc, cookies)
	apiHandler := NewAPIHandler(toiletSvc, querySvc)

	e.GET("/", authHandler.Index)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.GET("/main", toiletHandler.Main)
	e.POST("/add_toilet", toiletHandler.AddToilet)
	e.POST("/add_review/:toilet_id", toiletHandler.AddReview)
	e.POST("/api/auth/signup", authHandler.APISignup)
	e.POST("/api/auth/login", authHandler.APILogin)
	e.GET("/api/me", authHandler.Me)
	e.GET("/api/toilets", apiHandler.ListToilets)
	e.POST("/api/toilets", apiHandler.CreateToilet)
	e.GET("/api/toilet/:id", apiHandler.GetToilet)
	e.POST("/api/toilet/:id/reviews", apiHandler.CreateReview)
	return e
}

func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func flashFrom(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookie && c.Value != "" {
			msg, err := url.QueryUnescape(c.Value)
			require.NoError(t, err)
			return msg
		}
	}
	return ""
}

func cookieValue(rec *httptest.ResponseRecorder, name string) (string, bool) {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apperrors.ErrorResponse {
	t.Helper()
	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
