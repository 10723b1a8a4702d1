package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/marketplace/internal/core/ports"
)

type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// List returns the caller's call bookings, optionally filtered by status.
//
// @Summary      List call bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "scheduled, completed, cancelled or no-show"
// @Success      200     {array}   domain.Booking
// @Failure      400     {object}  errorResponse
// @Router       /bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	bookings, err := h.service.List(c.Request().Context(), p, c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// Create schedules a call between a candidate and an employer.
//
// @Summary      Book a call
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking details"
// @Success      201   {object}  domain.Booking
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req createBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	booking, err := h.service.Create(c.Request().Context(), p, toCreateBookingInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, booking)
}

// Update changes the status, time, link or notes of a booking.
//
// @Summary      Update a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Booking id"
// @Param        body  body      updateBookingRequest  true  "Fields to change"
// @Success      200   {object}  domain.Booking
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /bookings/{id} [put]
func (h *BookingHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req updateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	booking, err := h.service.Update(c.Request().Context(), p, c.Param("id"), toUpdateBookingInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// Delete cancels and removes a booking.
//
// @Summary      Delete a booking
// @Tags         bookings
// @Security     BearerAuth
// @Param        id   path  string  true  "Booking id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /bookings/{id} [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
