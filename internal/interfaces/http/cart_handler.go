package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/foodorder-api/internal/application/cart"
	"github.com/jhoicas/foodorder-api/internal/application/dto"
)

// CartHandler maneja el carrito de una sesión y su pago.
type CartHandler struct {
	uc *cart.CartUseCase
	errorHandler
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *cart.CartUseCase, eh errorHandler) *CartHandler {
	return &CartHandler{uc: uc, errorHandler: eh}
}

// Get GET /api/cart/:session
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("session"))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// AddLine POST /api/cart/:session/lines
func (h *CartHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddCartLineRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.AddLine(c.UserContext(), c.Params("session"), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(out, "agregado al carrito"))
}

// UpdateLine PATCH /api/cart/:session/lines/:line
func (h *CartHandler) UpdateLine(c *fiber.Ctx) error {
	var in dto.UpdateCartLineRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.UpdateQuantity(c.UserContext(), c.Params("session"), c.Params("line"), in.Quantity)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// RemoveLine DELETE /api/cart/:session/lines/:line
func (h *CartHandler) RemoveLine(c *fiber.Ctx) error {
	out, err := h.uc.RemoveLine(c.UserContext(), c.Params("session"), c.Params("line"))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// Clear DELETE /api/cart/:session
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.UserContext(), c.Params("session")); err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(nil, "carrito vaciado"))
}

// Checkout POST /api/cart/:session/checkout
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	key, err := idempotencyKey(c)
	if err != nil {
		return h.respond(c, err)
	}
	var in dto.CheckoutRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.Checkout(c.UserContext(), c.Params("session"), in, key)
	if err != nil {
		return h.respond(c, err)
	}
	return placedOrder(c, out)
}
