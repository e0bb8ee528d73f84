package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/foodorder-api/internal/application/dto"
	"github.com/jhoicas/foodorder-api/internal/application/ordering"
)

// OrderHandler maneja la creación y el seguimiento de pedidos.
type OrderHandler struct {
	uc      *ordering.OrderUseCase
	receipt *ordering.ReceiptUseCase
	errorHandler
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *ordering.OrderUseCase, receipt *ordering.ReceiptUseCase, eh errorHandler) *OrderHandler {
	return &OrderHandler{uc: uc, receipt: receipt, errorHandler: eh}
}

// Create POST /api/orders
// @Summary      Crear pedido
// @Description  Crea el pedido, sus líneas y acredita puntos en una sola transacción.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Clave para reintentos seguros"
// @Param        body  body  dto.PlaceOrderRequest  true  "Pedido"
// @Success      201  {object}  dto.APIResponse
// @Success      200  {object}  dto.APIResponse  "Repetición de una clave ya usada"
// @Failure      400  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	key, err := idempotencyKey(c)
	if err != nil {
		return h.respond(c, err)
	}
	var in dto.PlaceOrderRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.PlaceOrder(c.UserContext(), in, key)
	if err != nil {
		return h.respond(c, err)
	}
	return placedOrder(c, out)
}

// GetByID GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(order, ""))
}

// UpdateStatus PATCH /api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	order, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(order, "estado actualizado"))
}

// Receipt GET /api/orders/:id/receipt
// @Summary      Recibo PDF del pedido
// @Tags         orders
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipt.Receipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(pdf)
}

// placedOrder 201 para un pedido nuevo, 200 para una repetición idempotente.
func placedOrder(c *fiber.Ctx, out *dto.PlaceOrderResponse) error {
	if out.Replayed {
		return c.JSON(dto.OK(out, "pedido ya registrado"))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out, "pedido creado"))
}
