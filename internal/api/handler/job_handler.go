package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/job-portal/internal/api/metrics"
	"github.com/talentbridge/job-portal/internal/core/domain"
	"github.com/talentbridge/job-portal/internal/core/ports"
)

// JobHandler handles a company's job postings.
type JobHandler struct {
	portal ports.PortalService
}

func NewJobHandler(portal ports.PortalService) *JobHandler {
	return &JobHandler{portal: portal}
}

// Create handles POST /v1/jobs.
//
// @Summary      Post a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Job posting"
// @Success      201   {object}  domain.Job
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	view, err := ctxView(c)
	if err != nil {
		return err
	}
	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job, err := h.portal.CreateJob(c.Request().Context(), view, toJobInput(req))
	if err != nil {
		return err
	}
	metrics.JobMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, job)
}

// List handles GET /v1/jobs?active=true&limit=20, newest first.
//
// @Summary      List the caller's company jobs
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        active  query     bool  false  "Only active postings"
// @Param        limit   query     int   false  "Max rows (default 50, max 100)"
// @Success      200     {array}   domain.Job
// @Failure      403     {object}  errorResponse
// @Router       /v1/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	view, err := ctxView(c)
	if err != nil {
		return err
	}
	var filter domain.JobFilter
	if err := echo.QueryParamsBinder(c).
		Bool("active", &filter.ActiveOnly).
		Int("limit", &filter.Limit).
		BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	jobs, err := h.portal.GetCompanyJobs(c.Request().Context(), view, filter)
	if err != nil {
		return err
	}
	if jobs == nil {
		jobs = []*domain.Job{}
	}
	return c.JSON(http.StatusOK, jobs)
}

// Update handles PATCH /v1/jobs/:id. Only the owning company may change a job.
//
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Job id"
// @Param        body  body      updateJobRequest  true  "Fields to change"
// @Success      200   {object}  domain.Job
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/jobs/{id} [patch]
func (h *JobHandler) Update(c echo.Context) error {
	view, err := ctxView(c)
	if err != nil {
		return err
	}
	var req updateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job, err := h.portal.UpdateJob(c.Request().Context(), view, c.Param("id"), toJobUpdate(req))
	if err != nil {
		return err
	}
	metrics.JobMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, job)
}

// Delete handles DELETE /v1/jobs/:id. Deleting another company's job, or one
// that does not exist, reports zero rows.
//
// @Summary      Delete a job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  deleteJobResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	view, err := ctxView(c)
	if err != nil {
		return err
	}

	n, err := h.portal.DeleteJob(c.Request().Context(), view, c.Param("id"))
	if err != nil {
		return err
	}
	if n > 0 {
		metrics.JobMutationsTotal.WithLabelValues("delete").Inc()
	}
	return c.JSON(http.StatusOK, deleteJobResponse{Deleted: n})
}
