package cart

import (
	"context"

	"github.com/jhoicas/foodorder-api/internal/application/dto"
)

// OrderPlacer crea el pedido a partir de las líneas del carrito (ordering.OrderUseCase).
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, in dto.PlaceOrderRequest, idempotencyKey string) (*dto.PlaceOrderResponse, error)
}
