package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/foodorder-api/internal/application/catalog"
	"github.com/jhoicas/foodorder-api/internal/application/dto"
)

// MenuHandler expone el catálogo (público, solo lectura).
type MenuHandler struct {
	uc *catalog.CatalogUseCase
	errorHandler
}

// NewMenuHandler construye el handler.
func NewMenuHandler(uc *catalog.CatalogUseCase, eh errorHandler) *MenuHandler {
	return &MenuHandler{uc: uc, errorHandler: eh}
}

// Categories GET /api/menu/categories
func (h *MenuHandler) Categories(c *fiber.Ctx) error {
	list, err := h.uc.ListCategories(c.UserContext())
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(list, ""))
}

// Items GET /api/menu/items?category=<id|all>
// @Summary      Listar platos
// @Tags         menu
// @Produce      json
// @Param        category  query  string  false  "ID de categoría o all (default)"
// @Success      200  {object}  dto.APIResponse
// @Router       /api/menu/items [get]
func (h *MenuHandler) Items(c *fiber.Ctx) error {
	list, err := h.uc.ListItems(c.UserContext(), c.Query("category"))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(list, ""))
}

// Item GET /api/menu/items/:id
func (h *MenuHandler) Item(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(item, ""))
}

// Search GET /api/menu/search?q=&category=
func (h *MenuHandler) Search(c *fiber.Ctx) error {
	list, err := h.uc.Search(c.UserContext(), c.Query("q"), c.Query("category"))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(list, ""))
}
