package handler

import (
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"toiletfinder/internal/middleware"
)

const flashCookie = "flash"

// CookieManager writes the session and flash cookies used by the form endpoints.
type CookieManager struct {
	Domain string
	Secure bool
}

// NewCookieManager creates a cookie manager for the given domain.
func NewCookieManager(domain string, secure bool) *CookieManager {
	return &CookieManager{Domain: domain, Secure: secure}
}

// SetAccessToken stores the access token until exp.
func (m *CookieManager) SetAccessToken(c echo.Context, token string, exp time.Time) {
	c.SetCookie(m.cookie(middleware.AccessTokenCookie, token, maxAgeFrom(exp)))
}

// ClearAccessToken removes the access token cookie.
func (m *CookieManager) ClearAccessToken(c echo.Context) {
	c.SetCookie(m.cookie(middleware.AccessTokenCookie, "", -1))
}

// Flash queues a one-shot message for the next page.
func (m *CookieManager) Flash(c echo.Context, message string) {
	c.SetCookie(m.cookie(flashCookie, url.QueryEscape(capitalize(message)), 0))
}

// PopFlash returns the queued message, if any, and clears it.
func (m *CookieManager) PopFlash(c echo.Context) string {
	cookie, err := c.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}
	c.SetCookie(m.cookie(flashCookie, "", -1))
	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}

func (m *CookieManager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   m.Domain,
		MaxAge:   maxAge,
		Secure:   m.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// hasField reports whether a form key was submitted. Checkbox inputs are
// omitted entirely when unchecked.
func hasField(c echo.Context, name string) bool {
	params, err := c.FormParams()
	if err != nil {
		return false
	}
	_, ok := params[name]
	return ok
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
