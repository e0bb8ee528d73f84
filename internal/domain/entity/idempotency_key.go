package entity

import "time"

// Operaciones protegidas con clave de idempotencia.
const (
	IdempotencyOpPlaceOrder = "place_order"
	IdempotencyOpRedeem     = "redeem"
)

// IdempotencyKey resultado registrado de una operación no idempotente.
type IdempotencyKey struct {
	Key       string
	UserID    string
	Operation string
	Response  []byte // JSON del resultado original
	CreatedAt time.Time
}
