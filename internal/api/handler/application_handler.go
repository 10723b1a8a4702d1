package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/marketplace/internal/core/policy"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

// ApplicationHandler handles job applications and their lifecycle.
type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Apply handles POST /jobs/:id/apply.
//
// @Summary      Apply to a job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Job id"
// @Param        body  body      applyRequest  true  "Application details"
// @Success      201   {object}  domain.Application
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /jobs/{id}/apply [post]
func (h *ApplicationHandler) Apply(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	// Role first: a non-candidate learns nothing from body validation.
	if err := policy.RequireRole(p, policy.CandidateOnly); err != nil {
		return err
	}
	var req applyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	app, err := h.service.Submit(c.Request().Context(), p, toSubmitInput(c.Param("id"), req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, app)
}

// List handles GET /applications. Candidates see their own applications,
// employers the ones made to their jobs, admins all of them.
//
// @Summary      List applications visible to the caller
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Application
// @Failure      401  {object}  errorResponse
// @Router       /applications [get]
func (h *ApplicationHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	apps, err := h.service.List(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apps)
}

// ListForJob handles GET /jobs/:id/applications.
//
// @Summary      Applications to one job
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {array}   domain.Application
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /jobs/{id}/applications [get]
func (h *ApplicationHandler) ListForJob(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	apps, err := h.service.ListForJob(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apps)
}

// SetStatus handles PUT /applications/:id/status.
//
// @Summary      Move an application to a new status
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Application id"
// @Param        body  body      statusRequest  true  "Target status"
// @Success      200   {object}  domain.Application
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /applications/{id}/status [put]
func (h *ApplicationHandler) SetStatus(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := policy.RequireRole(p, policy.EmployerOrAdmin); err != nil {
		return err
	}
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	app, err := h.service.SetStatus(c.Request().Context(), p, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// History handles GET /applications/:id/history.
//
// @Summary      Status history of an application
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application id"
// @Success      200  {array}   domain.ApplicationEvent
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /applications/{id}/history [get]
func (h *ApplicationHandler) History(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	events, err := h.service.History(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
