package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"toiletfinder/internal/auth"
	"toiletfinder/internal/errors"
	"toiletfinder/internal/middleware"
	"toiletfinder/internal/service"
)

// AuthHandler handles registration, login and logout for both the form and
// JSON surfaces.
type AuthHandler struct {
	authService service.AuthService
	cookies     *CookieManager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookies *CookieManager) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// SignupRequest represents a registration request.
type SignupRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// AuthResponse represents a successful login.
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	ExpiresAt   time.Time      `json:"expires_at"`
	User        *auth.Identity `json:"user"`
}

// PageResponse stands in for a rendered page on the form surface.
type PageResponse struct {
	Page  string `json:"page"`
	Flash string `json:"flash,omitempty"`
}

// Index sends signed-in users to the main page and everyone else to login.
func (h *AuthHandler) Index(c echo.Context) error {
	if middleware.ActorFrom(c) != nil {
		return c.Redirect(http.StatusFound, "/main")
	}
	return c.Redirect(http.StatusFound, "/login")
}

// SignupPage returns the signup page state.
func (h *AuthHandler) SignupPage(c echo.Context) error {
	return c.JSON(http.StatusOK, PageResponse{Page: "signup", Flash: h.cookies.PopFlash(c)})
}

// LoginPage returns the login page state.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, PageResponse{Page: "login", Flash: h.cookies.PopFlash(c)})
}

// Signup handles the signup form.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		h.cookies.Flash(c, "All fields are required")
		return c.Redirect(http.StatusFound, "/signup")
	}

	_, err := h.authService.Signup(c.Request().Context(), strings.TrimSpace(req.Username), normalizeEmail(req.Email), req.Password)
	if err != nil {
		if errors.KindOf(err) == errors.KindInternal {
			h.cookies.Flash(c, "Registration failed, please try again")
		} else {
			h.cookies.Flash(c, err.Error())
		}
		return c.Redirect(http.StatusFound, "/signup")
	}

	h.cookies.Flash(c, "Account created successfully!")
	return c.Redirect(http.StatusFound, "/login")
}

// Login handles the login form and stores the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		h.cookies.Flash(c, errors.ErrInvalidCredentials.Error())
		return c.Redirect(http.StatusFound, "/login")
	}

	result, err := h.authService.Login(c.Request().Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if errors.KindOf(err) == errors.KindInternal {
			h.cookies.Flash(c, "Login failed, please try again")
		} else {
			h.cookies.Flash(c, err.Error())
		}
		return c.Redirect(http.StatusFound, "/login")
	}

	h.cookies.SetAccessToken(c, result.AccessToken, result.ExpiresAt)
	h.cookies.Flash(c, "Logged in successfully!")
	return c.Redirect(http.StatusFound, "/main")
}

// Logout ends the session and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.authService.Logout(c.Request().Context(), middleware.ActorFrom(c))
	h.cookies.ClearAccessToken(c)
	h.cookies.Flash(c, "Logged out successfully!")
	return c.Redirect(http.StatusFound, "/login")
}

// APISignup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) APISignup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	user, err := h.authService.Signup(c.Request().Context(), strings.TrimSpace(req.Username), normalizeEmail(req.Email), req.Password)
	if err != nil {
		return apiError(err)
	}

	return c.JSON(http.StatusCreated, user)
}

// APILogin godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) APILogin(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		return apiError(err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken: result.AccessToken,
		ExpiresAt:   result.ExpiresAt,
		User:        result.Identity,
	})
}

// APILogout godoc
// @Summary Logout user
// @Description Revokes the presented access token.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) APILogout(c echo.Context) error {
	h.authService.Logout(c.Request().Context(), middleware.ActorFrom(c))
	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} auth.Identity
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	actor := middleware.ActorFrom(c)
	if actor == nil {
		return apiError(errors.ErrUnauthenticated)
	}
	return c.JSON(http.StatusOK, actor)
}
