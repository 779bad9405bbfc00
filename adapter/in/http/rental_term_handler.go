package http

import (
	"rental_server/core/port/in"
	"rental_server/pkg/apperr"
	"rental_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TermHandler handles consent record routes.
type TermHandler struct {
	termService in.TermService
}

func NewTermHandler(termService in.TermService) *TermHandler {
	return &TermHandler{termService: termService}
}

func (h *TermHandler) Register(router fiber.Router, requireAuth fiber.Handler) {
	terms := router.Group("/terms", requireAuth)

	terms.Post("/", h.Save)
	terms.Get("/", h.Get)
	terms.Patch("/", h.Update)
}

func (h *TermHandler) Save(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	var req in.SaveTermRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	saved, err := h.termService.Save(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return response.Created(c, saved)
}

func (h *TermHandler) Get(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	found, err := h.termService.Get(c.Context(), userID)
	if err != nil {
		return err
	}
	return response.OK(c, found)
}

func (h *TermHandler) Update(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	var req in.SaveTermRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	updated, err := h.termService.Update(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return response.OK(c, updated)
}
