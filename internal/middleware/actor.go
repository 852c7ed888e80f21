package middleware

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"toiletfinder/internal/auth"
)

const (
	// AccessTokenCookie is the cookie holding the access token for browser clients.
	AccessTokenCookie = "access_token"

	actorKey  = "actor"
	claimsKey = "claims"
)

// Actor resolves the caller from a bearer token or the access token cookie.
// Requests without a valid, unrevoked token pass through anonymously; each
// handler decides whether it needs an actor.
func Actor(jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface, logger *logrus.Logger) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,cookie:" + AccessTokenCookie,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		SuccessHandler: func(c echo.Context) {
			claims, ok := c.Get(claimsKey).(*auth.Claims)
			if !ok {
				return
			}
			revoked, err := tokenStore.IsRevoked(c.Request().Context(), claims.ID)
			if err != nil {
				logger.WithError(err).Warn("revocation check failed")
			}
			if revoked {
				return
			}
			c.Set(actorKey, claims.Identity())
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

// ActorFrom returns the authenticated identity, or nil for anonymous requests.
func ActorFrom(c echo.Context) *auth.Identity {
	identity, _ := c.Get(actorKey).(*auth.Identity)
	return identity
}

// SetActor attaches identity to the request context.
func SetActor(c echo.Context, identity *auth.Identity) {
	c.Set(actorKey, identity)
}
