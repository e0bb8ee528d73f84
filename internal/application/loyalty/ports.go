package loyalty

import (
	"context"

	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

// LoyaltyTxRunner ejecuta un canje dentro de una transacción.
type LoyaltyTxRunner interface {
	RunLoyalty(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		rewardRepo repository.RewardRepository,
		pointsRepo repository.PointsTransactionRepository,
		keyRepo repository.IdempotencyRepository,
	) error) error
}
