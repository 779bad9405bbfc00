package http

import (
	"rental_server/core/port/in"
	"rental_server/pkg/apperr"
	"rental_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AccommodationHandler handles the accommodation catalog routes.
type AccommodationHandler struct {
	accommodationService in.AccommodationService
}

func NewAccommodationHandler(accommodationService in.AccommodationService) *AccommodationHandler {
	return &AccommodationHandler{accommodationService: accommodationService}
}

func (h *AccommodationHandler) Register(router fiber.Router, requireAuth, requireAdmin fiber.Handler) {
	accommodations := router.Group("/accommodations")

	accommodations.Get("/", h.List)
	accommodations.Get("/:id", h.Get)

	accommodations.Post("/", requireAuth, requireAdmin, h.Create)
	accommodations.Patch("/:id", requireAuth, requireAdmin, h.Update)
	accommodations.Delete("/:id", requireAuth, requireAdmin, h.Delete)
}

func (h *AccommodationHandler) List(c *fiber.Ctx) error {
	opts, err := ParsePageOptions(c)
	if err != nil {
		return err
	}

	page, err := h.accommodationService.List(c.Context(), opts)
	if err != nil {
		return err
	}
	return response.OKWithMeta(c, page.Accommodations, response.NewPageMeta(opts.Page, opts.Take, page.ItemCount))
}

func (h *AccommodationHandler) Get(c *fiber.Ctx) error {
	id, err := ParamUUID(c, "id")
	if err != nil {
		return err
	}
	found, err := h.accommodationService.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, found)
}

func (h *AccommodationHandler) Create(c *fiber.Ctx) error {
	var req in.CreateAccommodationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	imgs, err := FormFiles(c, "imgs")
	if err != nil {
		return err
	}

	created, err := h.accommodationService.Create(c.Context(), &req, imgs)
	if err != nil {
		return err
	}
	return response.Created(c, created)
}

func (h *AccommodationHandler) Update(c *fiber.Ctx) error {
	id, err := ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req in.UpdateAccommodationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	imgs, err := FormFiles(c, "imgs")
	if err != nil {
		return err
	}

	updated, err := h.accommodationService.Update(c.Context(), id, &req, imgs)
	if err != nil {
		return err
	}
	return response.OK(c, updated)
}

func (h *AccommodationHandler) Delete(c *fiber.Ctx) error {
	id, err := ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.accommodationService.Delete(c.Context(), id); err != nil {
		return err
	}
	return response.NoContent(c)
}
