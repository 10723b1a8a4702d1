package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

type LikeHandler struct {
	service ports.LikeService
}

func NewLikeHandler(service ports.LikeService) *LikeHandler {
	return &LikeHandler{service: service}
}

// Like handles POST /jobs/:id/like.
//
// @Summary      Like a job
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  domain.JobLikes
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /jobs/{id}/like [post]
func (h *LikeHandler) Like(c echo.Context) error {
	return h.respond(c, h.service.Like)
}

// Unlike handles DELETE /jobs/:id/like.
//
// @Summary      Remove a like
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  domain.JobLikes
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /jobs/{id}/like [delete]
func (h *LikeHandler) Unlike(c echo.Context) error {
	return h.respond(c, h.service.Unlike)
}

// Status handles GET /jobs/:id/like.
//
// @Summary      Like state of a job
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  domain.JobLikes
// @Failure      404  {object}  errorResponse
// @Router       /jobs/{id}/like [get]
func (h *LikeHandler) Status(c echo.Context) error {
	return h.respond(c, h.service.Status)
}

type likeOp func(ctx context.Context, p domain.Principal, jobID string) (*domain.JobLikes, error)

func (h *LikeHandler) respond(c echo.Context, op likeOp) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	likes, err := op(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likes)
}
