package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

type TestimonialHandler struct {
	service ports.TestimonialService
}

func NewTestimonialHandler(service ports.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{service: service}
}

// List returns approved testimonials. It is public.
//
// @Summary      List approved testimonials
// @Tags         testimonials
// @Produce      json
// @Param        category  query     string  false  "job-seeker or employer"
// @Param        limit     query     int     false  "Page size"
// @Param        offset    query     int     false  "Page offset"
// @Success      200       {array}   domain.Testimonial
// @Failure      400       {object}  errorResponse
// @Router       /testimonials [get]
func (h *TestimonialHandler) List(c echo.Context) error {
	var q testimonialListQuery
	err := echo.QueryParamsBinder(c).
		String("category", &q.Category).
		Int("limit", &q.Limit).
		Int("offset", &q.Offset).
		BindError()
	if err != nil {
		return fmt.Errorf("%w: invalid query parameters", domain.ErrInvalidInput)
	}
	if err := c.Validate(&q); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}

	items, err := h.service.ListApproved(c.Request().Context(), ports.TestimonialFilter{
		Category: domain.TestimonialCategory(q.Category),
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Submit stores a testimonial pending approval.
//
// @Summary      Submit a testimonial
// @Tags         testimonials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      testimonialRequest  true  "Testimonial"
// @Success      201   {object}  domain.Testimonial
// @Failure      400   {object}  errorResponse
// @Router       /testimonials [post]
func (h *TestimonialHandler) Submit(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req testimonialRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	item, err := h.service.Submit(c.Request().Context(), p, toTestimonialInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// Approve publishes a pending testimonial.
//
// @Summary      Approve a testimonial
// @Tags         testimonials
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Testimonial id"
// @Success      200  {object}  domain.Testimonial
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /testimonials/{id}/approve [put]
func (h *TestimonialHandler) Approve(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	item, err := h.service.Approve(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}
