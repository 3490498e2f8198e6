package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/job-portal/internal/api/middleware"
	"github.com/talentbridge/job-portal/internal/core/domain"
)

// ctxView returns the composite view injected by the Guard middleware. A
// missing view means the route was registered without Guard; reject with 401
// rather than run a mutation without an owner.
func ctxView(c echo.Context) (*domain.CompositeView, error) {
	view, ok := middleware.ViewFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return view, nil
}

func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
