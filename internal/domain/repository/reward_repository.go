package repository

import (
	"context"

	"github.com/jhoicas/foodorder-api/internal/domain/entity"
)

// RewardRepository puerto de lectura de recompensas de fidelidad.
type RewardRepository interface {
	// ListActive recompensas activas, de menor a mayor costo.
	ListActive(ctx context.Context) ([]*entity.LoyaltyReward, error)
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.LoyaltyReward, error)
}
