package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/job-portal/internal/core/domain"
)

// TokenVerifier is the part of the identity provider Auth needs.
type TokenVerifier interface {
	IdentityFromToken(ctx context.Context, token string) (*domain.Identity, error)
}

// Auth validates the bearer token against the identity provider and injects
// the identity and raw token into context.
func Auth(provider TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			identity, err := provider.IdentityFromToken(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(IdentityKey, *identity)
			c.Set(AccessTokenKey, token)

			return next(c)
		}
	}
}

// OptionalAuth behaves like Auth when a bearer token is present and passes
// the request through untouched otherwise. An invalid token is still rejected.
func OptionalAuth(provider TokenVerifier) echo.MiddlewareFunc {
	strict := Auth(provider)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		withAuth := strict(next)
		return func(c echo.Context) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return next(c)
			}
			return withAuth(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}
