package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/talentbridge/job-portal/internal/core/domain"
)

// Context keys set by Auth and Guard.
const (
	IdentityKey    = "identity"
	AccessTokenKey = "access_token"
	ViewKey        = "view"
)

// IdentityFrom returns the identity injected by Auth.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(IdentityKey).(domain.Identity)
	return id, ok && id.ID != ""
}

// AccessTokenFrom returns the raw bearer token injected by Auth.
func AccessTokenFrom(c echo.Context) string {
	tok, _ := c.Get(AccessTokenKey).(string)
	return tok
}

// ViewFrom returns the composite view injected by Guard.
func ViewFrom(c echo.Context) (*domain.CompositeView, bool) {
	v, ok := c.Get(ViewKey).(*domain.CompositeView)
	return v, ok && v != nil
}
