package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/foodorder-api/internal/application/directory"
	"github.com/jhoicas/foodorder-api/internal/application/dto"
	"github.com/jhoicas/foodorder-api/internal/application/loyalty"
	"github.com/jhoicas/foodorder-api/internal/application/ordering"
)

// UserHandler maneja identificación de clientes y sus vistas (pedidos, puntos).
type UserHandler struct {
	directory *directory.DirectoryUseCase
	orders    *ordering.OrderUseCase
	loyalty   *loyalty.LoyaltyUseCase
	errorHandler
}

// NewUserHandler construye el handler.
func NewUserHandler(dir *directory.DirectoryUseCase, orders *ordering.OrderUseCase, loy *loyalty.LoyaltyUseCase, eh errorHandler) *UserHandler {
	return &UserHandler{directory: dir, orders: orders, loyalty: loy, errorHandler: eh}
}

// Identify POST /api/users/identify
// @Summary      Identificar cliente por teléfono
// @Description  Devuelve el cliente existente o lo crea con el bono de bienvenida.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IdentifyRequest  true  "phone (obligatorio) y name (para clientes nuevos)"
// @Success      200  {object}  dto.APIResponse
// @Success      201  {object}  dto.APIResponse
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/users/identify [post]
func (h *UserHandler) Identify(c *fiber.Ctx) error {
	var in dto.IdentifyRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.directory.Identify(c.UserContext(), in)
	if err != nil {
		return h.respond(c, err)
	}
	if out.Created {
		return c.Status(fiber.StatusCreated).JSON(dto.OK(out, "cliente creado"))
	}
	return c.JSON(dto.OK(out, ""))
}

// Register POST /api/users/register
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	user, err := h.directory.Register(c.UserContext(), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(user, "cliente registrado"))
}

// GetByID GET /api/users/:id
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.directory.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(user, ""))
}

// Orders GET /api/users/:id/orders
func (h *UserHandler) Orders(c *fiber.Ctx) error {
	list, err := h.orders.ListOrders(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(list, ""))
}

// Points GET /api/users/:id/points
func (h *UserHandler) Points(c *fiber.Ctx) error {
	list, err := h.loyalty.History(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(list, ""))
}

// Loyalty GET /api/users/:id/loyalty
func (h *UserHandler) Loyalty(c *fiber.Ctx) error {
	summary, err := h.loyalty.Summary(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(summary, ""))
}
