package http

import (
	"rental_server/core/domain"
	"rental_server/core/port/in"
	"rental_server/pkg/apperr"
	"rental_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CarHandler handles the car catalog routes.
type CarHandler struct {
	carService in.CarService
}

func NewCarHandler(carService in.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

// Register mounts the car routes. Reads are public; writes are admin-only.
func (h *CarHandler) Register(router fiber.Router, requireAuth, requireAdmin fiber.Handler) {
	cars := router.Group("/cars")

	cars.Get("/", h.List)
	cars.Get("/classification/:classification", h.ListByClassification)
	cars.Get("/fuel/:fuel", h.ListByFuel)
	cars.Get("/:id", h.Get)

	cars.Post("/", requireAuth, requireAdmin, h.Create)
	cars.Post("/import", requireAuth, requireAdmin, h.Import)
	cars.Patch("/:id", requireAuth, requireAdmin, h.Update)
	cars.Delete("/:id", requireAuth, requireAdmin, h.Delete)
}

func (h *CarHandler) List(c *fiber.Ctx) error {
	opts, err := ParsePageOptions(c)
	if err != nil {
		return err
	}

	filter := &domain.CarFilter{PageOptions: *opts}
	if v := c.Query("classification"); v != "" {
		cl := domain.Classification(v)
		if !domain.ValidClassification(cl) {
			return apperr.InvalidInput("classification", v)
		}
		filter.Classification = &cl
	}
	if v := c.Query("fuel"); v != "" {
		f := domain.Fuel(v)
		if !domain.ValidFuel(f) {
			return apperr.InvalidInput("fuel", v)
		}
		filter.Fuel = &f
	}
	if v := c.QueryInt("price_min", -1); v >= 0 {
		filter.PriceMin = &v
	}
	if v := c.QueryInt("price_max", -1); v >= 0 {
		filter.PriceMax = &v
	}

	page, err := h.carService.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return response.OKWithMeta(c, page.Cars, response.NewPageMeta(filter.Page, filter.Take, page.ItemCount))
}

func (h *CarHandler) Get(c *fiber.Ctx) error {
	id, err := ParamUUID(c, "id")
	if err != nil {
		return err
	}
	found, err := h.carService.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, found)
}

func (h *CarHandler) ListByClassification(c *fiber.Ctx) error {
	cars, err := h.carService.FindByClassification(c.Context(), domain.Classification(c.Params("classification")))
	if err != nil {
		return err
	}
	return response.OK(c, cars)
}

func (h *CarHandler) ListByFuel(c *fiber.Ctx) error {
	cars, err := h.carService.FindByFuel(c.Context(), domain.Fuel(c.Params("fuel")))
	if err != nil {
		return err
	}
	return response.OK(c, cars)
}

func (h *CarHandler) Create(c *fiber.Ctx) error {
	var req in.CreateCarRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	imgs, err := FormFiles(c, "imgs")
	if err != nil {
		return err
	}

	created, err := h.carService.Create(c.Context(), &req, imgs)
	if err != nil {
		return err
	}
	return response.Created(c, created)
}

func (h *CarHandler) Update(c *fiber.Ctx) error {
	id, err := ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req in.UpdateCarRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	imgs, err := FormFiles(c, "imgs")
	if err != nil {
		return err
	}

	updated, err := h.carService.Update(c.Context(), id, &req, imgs)
	if err != nil {
		return err
	}
	return response.OK(c, updated)
}

func (h *CarHandler) Delete(c *fiber.Ctx) error {
	id, err := ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.carService.Delete(c.Context(), id); err != nil {
		return err
	}
	return response.NoContent(c)
}

// Import ingests a car batch (spreadsheet export) and upserts by car number
func (h *CarHandler) Import(c *fiber.Ctx) error {
	var cars []*domain.Car
	if err := c.BodyParser(&cars); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	n, err := h.carService.Import(c.Context(), cars)
	if err != nil {
		return err
	}
	return response.OK(c, fiber.Map{"imported": n})
}
