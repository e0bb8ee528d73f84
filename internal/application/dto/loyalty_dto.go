package dto

import "time"

// RewardResponse recompensa canjeable.
type RewardResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PointsCost  int    `json:"points_cost"`
	Type        string `json:"type"`
	Icon        string `json:"icon"`
}

// RedeemRequest body para POST /api/loyalty/redeem.
type RedeemRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	RewardID string `json:"reward_id" validate:"required"`
}

// RedeemResponse resultado de un canje.
type RedeemResponse struct {
	Message     string `json:"message"`
	RewardID    string `json:"reward_id"`
	PointsSpent int    `json:"points_spent"`
	Balance     int    `json:"balance"`
	Replayed    bool   `json:"replayed,omitempty"`
}

// PointsTransactionResponse asiento del historial de puntos.
type PointsTransactionResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Points      int       `json:"points"`
	Source      string    `json:"source"`
	Description string    `json:"description"`
	OrderID     string    `json:"order_id,omitempty"`
	RewardID    string    `json:"reward_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// LoyaltySummaryResponse saldo, nivel y avance al siguiente nivel.
type LoyaltySummaryResponse struct {
	UserID           string `json:"user_id"`
	Points           int    `json:"points"`
	Tier             string `json:"tier"`
	NextTier         string `json:"next_tier,omitempty"`
	PointsToNextTier int    `json:"points_to_next_tier"`
	ProgressPercent  int    `json:"progress_percent"`
}
