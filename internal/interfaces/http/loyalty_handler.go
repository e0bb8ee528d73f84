package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/foodorder-api/internal/application/dto"
	"github.com/jhoicas/foodorder-api/internal/application/loyalty"
)

// LoyaltyHandler maneja recompensas y canjes.
type LoyaltyHandler struct {
	uc *loyalty.LoyaltyUseCase
	errorHandler
}

// NewLoyaltyHandler construye el handler.
func NewLoyaltyHandler(uc *loyalty.LoyaltyUseCase, eh errorHandler) *LoyaltyHandler {
	return &LoyaltyHandler{uc: uc, errorHandler: eh}
}

// Rewards GET /api/loyalty/rewards
func (h *LoyaltyHandler) Rewards(c *fiber.Ctx) error {
	list, err := h.uc.ListRewards(c.UserContext())
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(list, ""))
}

// Redeem POST /api/loyalty/redeem
// @Summary      Canjear recompensa
// @Tags         loyalty
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Clave para reintentos seguros"
// @Param        body  body  dto.RedeemRequest  true  "user_id y reward_id"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Failure      422  {object}  dto.APIResponse  "Puntos insuficientes"
// @Router       /api/loyalty/redeem [post]
func (h *LoyaltyHandler) Redeem(c *fiber.Ctx) error {
	key, err := idempotencyKey(c)
	if err != nil {
		return h.respond(c, err)
	}
	var in dto.RedeemRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.Redeem(c.UserContext(), in, key)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(out, out.Message))
}
