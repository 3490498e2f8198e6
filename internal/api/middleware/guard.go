package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/job-portal/internal/api/metrics"
	"github.com/talentbridge/job-portal/internal/core/domain"
	"github.com/talentbridge/job-portal/internal/core/guard"
)

// ViewSource is the part of the session controller Guard needs.
type ViewSource interface {
	Ready() bool
	Current(ctx context.Context, identity domain.Identity) (*domain.CompositeView, error)
}

type guardResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// Guard runs the access check for a protected route and injects the
// composite view on success. With no roles any signed-in profile passes.
//
//   - controller not ready: 503
//   - no profile: 401 with redirect to the login page
//   - role mismatch: 403 with redirect to the unauthorized page
func Guard(sessions ViewSource, roles ...domain.Role) echo.MiddlewareFunc {
	required := guard.Roles(roles...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			check := guard.New(required...)
			ready := sessions.Ready()

			var view *domain.CompositeView
			if ready {
				if identity, ok := IdentityFrom(c); ok {
					v, err := sessions.Current(c.Request().Context(), identity)
					if err != nil {
						return err
					}
					view = v
				}
			}

			state := check.Advance(ready, view)
			metrics.GuardDecisionsTotal.WithLabelValues(string(state)).Inc()

			switch state {
			case guard.StateAuthorized:
				c.Set(ViewKey, view)
				return next(c)
			case guard.StateRedirecting:
				if check.Target() == guard.LoginPath {
					return c.JSON(http.StatusUnauthorized, guardResponse{Error: "authentication required", Redirect: check.Target()})
				}
				return c.JSON(http.StatusForbidden, guardResponse{Error: "forbidden", Redirect: check.Target()})
			default:
				return c.JSON(http.StatusServiceUnavailable, guardResponse{Error: "session is still initializing"})
			}
		}
	}
}
