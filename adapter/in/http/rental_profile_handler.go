package http

import (
	"rental_server/core/port/in"
	"rental_server/pkg/apperr"
	"rental_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles the extended member profile routes.
type ProfileHandler struct {
	profileService in.ProfileService
}

func NewProfileHandler(profileService in.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Register(router fiber.Router, requireAuth fiber.Handler) {
	profiles := router.Group("/profile", requireAuth)

	profiles.Post("/", h.Create)
	profiles.Get("/", h.Get)
	profiles.Patch("/", h.Update)
	profiles.Delete("/", h.Delete)
}

func (h *ProfileHandler) Create(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	var req in.CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	created, err := h.profileService.Create(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return response.Created(c, created)
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	found, err := h.profileService.Get(c.Context(), userID)
	if err != nil {
		return err
	}
	return response.OK(c, found)
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	var req in.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	updated, err := h.profileService.Update(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return response.OK(c, updated)
}

func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	if err := h.profileService.Delete(c.Context(), userID); err != nil {
		return err
	}
	return response.NoContent(c)
}
