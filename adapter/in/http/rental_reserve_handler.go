package http

import (
	"rental_server/core/port/in"
	"rental_server/pkg/apperr"
	"rental_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReserveHandler handles the car reservation routes.
type ReserveHandler struct {
	reservationService in.ReservationService
}

func NewReserveHandler(reservationService in.ReservationService) *ReserveHandler {
	return &ReserveHandler{reservationService: reservationService}
}

func (h *ReserveHandler) Register(router fiber.Router, requireAuth fiber.Handler) {
	reservations := router.Group("/reservations", requireAuth)

	reservations.Post("/", h.Create)
	reservations.Get("/", h.ListMine)
	reservations.Get("/:id", h.Get)
	reservations.Patch("/:id", h.Patch)
	reservations.Delete("/:id", h.Cancel)
}

func (h *ReserveHandler) Create(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	var req in.CreateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	created, err := h.reservationService.Create(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return response.Created(c, created)
}

func (h *ReserveHandler) ListMine(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	reservations, err := h.reservationService.ListMine(c.Context(), userID)
	if err != nil {
		return err
	}
	return response.OK(c, reservations)
}

func (h *ReserveHandler) Get(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	id, err := ParamUUID(c, "id")
	if err != nil {
		return err
	}
	found, err := h.reservationService.Get(c.Context(), userID, id)
	if err != nil {
		return err
	}
	return response.OK(c, found)
}

func (h *ReserveHandler) Patch(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	id, err := ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req in.PatchReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	updated, err := h.reservationService.Patch(c.Context(), userID, id, &req)
	if err != nil {
		return err
	}
	return response.OK(c, updated)
}

func (h *ReserveHandler) Cancel(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	id, err := ParamUUID(c, "id")
	if err != nil {
		return err
	}
	canceled, err := h.reservationService.Cancel(c.Context(), userID, id)
	if err != nil {
		return err
	}
	return response.OK(c, canceled)
}
