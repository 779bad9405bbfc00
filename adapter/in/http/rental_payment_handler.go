package http

import (
	"rental_server/core/port/in"
	"rental_server/pkg/apperr"
	"rental_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles stored payment method routes.
type PaymentHandler struct {
	paymentService in.PaymentService
}

func NewPaymentHandler(paymentService in.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) Register(router fiber.Router, requireAuth fiber.Handler) {
	payments := router.Group("/payments", requireAuth)

	payments.Post("/", h.RegisterCard)
	payments.Get("/", h.List)
	payments.Patch("/:id/main", h.SetMain)
	payments.Delete("/:id", h.Delete)
}

func (h *PaymentHandler) RegisterCard(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	var req in.RegisterPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	created, err := h.paymentService.Register(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return response.Created(c, created)
}

func (h *PaymentHandler) List(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	payments, err := h.paymentService.List(c.Context(), userID)
	if err != nil {
		return err
	}
	return response.OK(c, payments)
}

func (h *PaymentHandler) SetMain(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	id, err := ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.paymentService.SetMain(c.Context(), userID, id); err != nil {
		return err
	}
	return response.Message(c, "main card updated")
}

func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	id, err := ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.paymentService.Delete(c.Context(), userID, id); err != nil {
		return err
	}
	return response.NoContent(c)
}
