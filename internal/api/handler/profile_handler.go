package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/job-portal/internal/core/domain"
	"github.com/talentbridge/job-portal/internal/core/ports"
)

// ProfileHandler serves the profile-side mutations. Every route runs behind
// Guard, so the composite view is always in context.
type ProfileHandler struct {
	portal   ports.PortalService
	sessions ports.SessionService
}

func NewProfileHandler(portal ports.PortalService, sessions ports.SessionService) *ProfileHandler {
	return &ProfileHandler{portal: portal, sessions: sessions}
}

// UpdateProfile handles PATCH /v1/profile.
//
// @Summary      Update the caller's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.ProfileUpdate  true  "Fields to change"
// @Success      200   {object}  domain.CompositeView
// @Failure      422   {object}  errorResponse
// @Router       /v1/profile [patch]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	view, err := ctxView(c)
	if err != nil {
		return err
	}
	var req domain.ProfileUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	out, err := h.portal.UpdateProfile(c.Request().Context(), view, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Refresh handles POST /v1/profile/refresh: drop the cached view and resolve
// it again from the store.
//
// @Summary      Re-resolve the caller's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.CompositeView
// @Router       /v1/profile/refresh [post]
func (h *ProfileHandler) Refresh(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	view, err := h.sessions.Refresh(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// UpdateCompany handles PUT /v1/company. A company user without a company
// creates one (or joins the existing one with that name) as admin.
//
// @Summary      Create or update the caller's company
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.CompanyUpdate  true  "Company fields"
// @Success      200   {object}  domain.CompositeView
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/company [put]
func (h *ProfileHandler) UpdateCompany(c echo.Context) error {
	view, err := ctxView(c)
	if err != nil {
		return err
	}
	var req domain.CompanyUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	out, err := h.portal.UpdateCompanyProfile(c.Request().Context(), view, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateVendor handles PUT /v1/vendor.
//
// @Summary      Create or update the caller's vendor
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.VendorUpdate  true  "Vendor fields"
// @Success      200   {object}  domain.CompositeView
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/vendor [put]
func (h *ProfileHandler) UpdateVendor(c echo.Context) error {
	view, err := ctxView(c)
	if err != nil {
		return err
	}
	var req domain.VendorUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	out, err := h.portal.UpdateVendorProfile(c.Request().Context(), view, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateJobSeeker handles PUT /v1/job-seeker.
//
// @Summary      Create or update the caller's candidate record
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.JobSeekerUpdate  true  "Candidate fields"
// @Success      200   {object}  domain.CompositeView
// @Failure      422   {object}  errorResponse
// @Router       /v1/job-seeker [put]
func (h *ProfileHandler) UpdateJobSeeker(c echo.Context) error {
	view, err := ctxView(c)
	if err != nil {
		return err
	}
	var req domain.JobSeekerUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	out, err := h.portal.UpdateJobSeekerProfile(c.Request().Context(), view, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
