package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get returns the caller's profile, creating an empty one on first access.
//
// @Summary      Get own profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  errorResponse
// @Router       /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	profile, err := h.service.Get(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Update replaces the caller's profile.
//
// @Summary      Update own profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Profile fields"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Router       /profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	profile, err := h.service.Update(c.Request().Context(), p, toProfileInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// GetForUser returns another user's profile.
//
// @Summary      Get a user's profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string  true  "User id"
// @Success      200      {object}  domain.Profile
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /profiles/{user_id} [get]
func (h *ProfileHandler) GetForUser(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	profile, err := h.service.GetForUser(c.Request().Context(), p, c.Param("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// ListTalents is the public candidate directory.
//
// @Summary      List talents
// @Tags         profiles
// @Produce      json
// @Param        search      query     string  false  "Matches name or bio"
// @Param        skills      query     string  false  "Comma-separated skills, any match"
// @Param        experience  query     int     false  "Minimum years of experience"
// @Param        limit       query     int     false  "Page size (default 20, max 100)"
// @Param        offset      query     int     false  "Offset"
// @Success      200         {array}   domain.Talent
// @Failure      400         {object}  errorResponse
// @Router       /talents [get]
func (h *ProfileHandler) ListTalents(c echo.Context) error {
	var (
		q   talentListQuery
		exp int
	)
	err := echo.QueryParamsBinder(c).
		String("search", &q.Search).
		String("skills", &q.Skills).
		Int("experience", &exp).
		Int("limit", &q.Limit).
		Int("offset", &q.Offset).
		BindError()
	if err != nil {
		return fmt.Errorf("%w: invalid query parameters", domain.ErrInvalidInput)
	}
	if c.QueryParam("experience") != "" {
		q.Experience = &exp
	}
	if err := c.Validate(&q); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}

	var skills []string
	for _, s := range strings.Split(q.Skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}

	talents, err := h.service.ListTalents(c.Request().Context(), ports.TalentFilter{
		Search:        strings.TrimSpace(q.Search),
		Skills:        skills,
		MinExperience: q.Experience,
		Limit:         q.Limit,
		Offset:        q.Offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, talents)
}
