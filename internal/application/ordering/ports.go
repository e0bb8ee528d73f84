package ordering

import (
	"context"

	"github.com/jhoicas/foodorder-api/internal/domain/entity"
	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

// OrderTxRunner ejecuta una función dentro de una transacción que incluye usuario, pedido,
// libro de puntos y claves de idempotencia.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		orderRepo repository.OrderRepository,
		pointsRepo repository.PointsTransactionRepository,
		keyRepo repository.IdempotencyRepository,
	) error) error
}

// ReceiptGenerator genera el PDF de un pedido. Implementado en infrastructure/pdf.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, order *entity.Order, customer *entity.User, pointsEarned int) ([]byte, error)
}
