package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// List handles GET /jobs. Only open jobs are listed.
//
// @Summary      List open jobs
// @Tags         jobs
// @Produce      json
// @Param        title       query     string  false  "Title contains"
// @Param        location    query     string  false  "Location contains"
// @Param        job_type    query     string  false  "full-time, part-time, contract or remote"
// @Param        salary_min  query     int     false  "Minimum salary"
// @Param        salary_max  query     int     false  "Maximum salary"
// @Success      200         {array}   domain.Job
// @Failure      400         {object}  errorResponse
// @Router       /jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	q, err := bindJobQuery(c)
	if err != nil {
		return err
	}
	jobs, err := h.service.List(c.Request().Context(), toJobFilter(q))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}

// Get handles GET /jobs/:id.
//
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  domain.Job
// @Failure      404  {object}  errorResponse
// @Router       /jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Mine handles GET /jobs/mine.
//
// @Summary      Jobs posted by the caller
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Job
// @Failure      403  {object}  errorResponse
// @Router       /jobs/mine [get]
func (h *JobHandler) Mine(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	jobs, err := h.service.ListMine(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}

// Create handles POST /jobs.
//
// @Summary      Post a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      jobRequest  true  "Job details"
// @Success      201   {object}  domain.Job
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req jobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	job, err := h.service.Create(c.Request().Context(), p, toJobInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, job)
}

// Update handles PUT /jobs/:id.
//
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string      true  "Job id"
// @Param        body  body      jobRequest  true  "Fields to change"
// @Success      200   {object}  domain.Job
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /jobs/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req jobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	job, err := h.service.Update(c.Request().Context(), p, c.Param("id"), toJobInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Delete handles DELETE /jobs/:id.
//
// @Summary      Delete a job
// @Tags         jobs
// @Security     BearerAuth
// @Param        id   path  string  true  "Job id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// bindJobQuery reads the optional listing filters. Salary bounds stay nil
// when absent.
func bindJobQuery(c echo.Context) (jobListQuery, error) {
	var (
		q      jobListQuery
		lo, hi int64
	)
	err := echo.QueryParamsBinder(c).
		String("title", &q.Title).
		String("location", &q.Location).
		String("job_type", &q.JobType).
		Int64("salary_min", &lo).
		Int64("salary_max", &hi).
		BindError()
	if err != nil {
		return q, fmt.Errorf("%w: invalid query parameters", domain.ErrInvalidInput)
	}
	if c.QueryParam("salary_min") != "" {
		q.SalaryMin = &lo
	}
	if c.QueryParam("salary_max") != "" {
		q.SalaryMax = &hi
	}
	if err := c.Validate(&q); err != nil {
		return q, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	return q, nil
}
