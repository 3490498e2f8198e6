package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/job-portal/internal/core/domain"
	"github.com/talentbridge/job-portal/internal/core/ports"
)

// DashboardHandler serves the company landing page and vendor directory.
type DashboardHandler struct {
	portal ports.PortalService
}

func NewDashboardHandler(portal ports.PortalService) *DashboardHandler {
	return &DashboardHandler{portal: portal}
}

// Company handles GET /v1/dashboard/company.
//
// @Summary      Company dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.CompanyDashboard
// @Failure      403  {object}  errorResponse
// @Router       /v1/dashboard/company [get]
func (h *DashboardHandler) Company(c echo.Context) error {
	view, err := ctxView(c)
	if err != nil {
		return err
	}
	dash, err := h.portal.CompanyDashboard(c.Request().Context(), view)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dash)
}

// JobSeeker handles GET /v1/dashboard/job-seeker?limit=, the newest active
// postings of every company.
//
// @Summary      Job seeker dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max jobs (default 6, max 100)"
// @Success      200    {object}  ports.JobSeekerDashboard
// @Failure      403    {object}  errorResponse
// @Router       /v1/dashboard/job-seeker [get]
func (h *DashboardHandler) JobSeeker(c echo.Context) error {
	view, err := ctxView(c)
	if err != nil {
		return err
	}
	var limit int
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	dash, err := h.portal.JobSeekerDashboard(c.Request().Context(), view, limit)
	if err != nil {
		return err
	}
	if dash.RecentJobs == nil {
		dash.RecentJobs = []*domain.JobListing{}
	}
	return c.JSON(http.StatusOK, dash)
}

// Vendors handles GET /v1/vendors?service_type=&q=&limit=.
//
// @Summary      Vendor directory
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        service_type  query     string  false  "Exact service type"
// @Param        q             query     string  false  "Free-text search on name and description"
// @Param        limit         query     int     false  "Max rows (default 50, max 100)"
// @Success      200           {array}   domain.Vendor
// @Router       /v1/vendors [get]
func (h *DashboardHandler) Vendors(c echo.Context) error {
	var filter domain.VendorFilter
	if err := echo.QueryParamsBinder(c).
		String("service_type", &filter.ServiceType).
		String("q", &filter.Search).
		Int("limit", &filter.Limit).
		BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	vendors, err := h.portal.ListVendors(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if vendors == nil {
		vendors = []*domain.Vendor{}
	}
	return c.JSON(http.StatusOK, vendors)
}
