package entity

import "time"

// Tipos de recompensa.
const (
	RewardTypeFood     = "food"
	RewardTypeDiscount = "discount"
	RewardTypeDelivery = "delivery"
	RewardTypeOther    = "other"
)

// LoyaltyReward recompensa canjeable con puntos.
type LoyaltyReward struct {
	ID          string
	Name        string
	Description string
	PointsCost  int
	Type        string
	Icon        string
	IsActive    bool
	CreatedAt   time.Time
}
