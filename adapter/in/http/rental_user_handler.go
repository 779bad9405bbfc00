package http

import (
	"rental_server/core/port/in"
	"rental_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles account routes.
type UserHandler struct {
	userService in.UserService
}

func NewUserHandler(userService in.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Register(router fiber.Router, requireAuth, requireAdmin fiber.Handler) {
	users := router.Group("/users")

	users.Get("/me", requireAuth, h.Me)
	users.Put("/me/imgs", requireAuth, h.UpdateProfileImgs)
	users.Delete("/me", requireAuth, h.DeleteMe)

	users.Get("/email/:email", requireAuth, requireAdmin, h.FindByEmail)
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	me, err := h.userService.FindByID(c.Context(), userID)
	if err != nil {
		return err
	}
	return response.OK(c, me)
}

// UpdateProfileImgs replaces the profile image set with the uploaded files
func (h *UserHandler) UpdateProfileImgs(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	files, err := FormFiles(c, "imgs")
	if err != nil {
		return err
	}

	urls, err := h.userService.UpdateProfileImgs(c.Context(), userID, files)
	if err != nil {
		return err
	}
	return response.OK(c, fiber.Map{"imgs": urls})
}

func (h *UserHandler) DeleteMe(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	if err := h.userService.Delete(c.Context(), userID); err != nil {
		return err
	}
	return response.NoContent(c)
}

func (h *UserHandler) FindByEmail(c *fiber.Ctx) error {
	found, err := h.userService.FindByEmail(c.Context(), c.Params("email"))
	if err != nil {
		return err
	}
	return response.OK(c, found)
}
