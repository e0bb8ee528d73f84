package directory

import (
	"context"

	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

// TxRunner ejecuta la creación de usuario y su bono de bienvenida en una sola transacción.
type TxRunner interface {
	RunDirectory(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		pointsRepo repository.PointsTransactionRepository,
	) error) error
}
