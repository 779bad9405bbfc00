package http

import (
	"rental_server/core/port/in"
	"rental_server/pkg/apperr"
	"rental_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CommentHandler handles review routes for cars and accommodations.
type CommentHandler struct {
	commentService in.CommentService
}

func NewCommentHandler(commentService in.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Register(router fiber.Router, requireAuth fiber.Handler) {
	router.Get("/cars/:id/comments", h.ListForCar)
	router.Post("/cars/:id/comments", requireAuth, h.CreateForCar)

	router.Get("/accommodations/:id/comments", h.ListForAccommodation)
	router.Post("/accommodations/:id/comments", requireAuth, h.CreateForAccommodation)

	router.Patch("/comments/:id", requireAuth, h.Update)
	router.Delete("/comments/:id", requireAuth, h.Delete)
}

func (h *CommentHandler) CreateForCar(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	carID, err := ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req in.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	created, err := h.commentService.CreateForCar(c.Context(), userID, carID, &req)
	if err != nil {
		return err
	}
	return response.Created(c, created)
}

func (h *CommentHandler) CreateForAccommodation(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	accommodationID, err := ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req in.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	created, err := h.commentService.CreateForAccommodation(c.Context(), userID, accommodationID, &req)
	if err != nil {
		return err
	}
	return response.Created(c, created)
}

func (h *CommentHandler) ListForCar(c *fiber.Ctx) error {
	carID, err := ParamUUID(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.commentService.ListByCar(c.Context(), carID)
	if err != nil {
		return err
	}
	return response.OK(c, comments)
}

func (h *CommentHandler) ListForAccommodation(c *fiber.Ctx) error {
	accommodationID, err := ParamUUID(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.commentService.ListByAccommodation(c.Context(), accommodationID)
	if err != nil {
		return err
	}
	return response.OK(c, comments)
}

func (h *CommentHandler) Update(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	commentID, err := ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req in.UpdateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	updated, err := h.commentService.Update(c.Context(), userID, commentID, &req)
	if err != nil {
		return err
	}
	return response.OK(c, updated)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	commentID, err := ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.commentService.Delete(c.Context(), userID, commentID); err != nil {
		return err
	}
	return response.NoContent(c)
}
