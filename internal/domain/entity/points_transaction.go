package entity

import "time"

// Tipos de transacción de puntos.
const (
	PointsTypeEarned   = "earned"
	PointsTypeRedeemed = "redeemed"
)

// Orígenes de una transacción de puntos.
const (
	PointsSourceOrder  = "order"
	PointsSourceReward = "reward"
	PointsSourceSignup = "signup"
	PointsSourceManual = "manual"
)

// PointsTransaction asiento del libro de puntos (solo inserción, nunca se modifica).
type PointsTransaction struct {
	ID          string
	UserID      string
	Type        string
	Points      int // positivo al ganar, negativo al canjear
	Source      string
	Description string
	OrderID     string // opcional
	RewardID    string // opcional
	CreatedAt   time.Time
}
