package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusPickedUp  = "picked_up"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Modos de entrega.
const (
	DeliveryModeDelivery = "delivery"
	DeliveryModePickup   = "pickup"
	DeliveryModeTaftaf   = "taftaf" // exprés
)

// Medios de pago (simulados, solo se registran).
const (
	PaymentOrangeMoney = "orange_money"
	PaymentWave        = "wave"
	PaymentCard        = "card"
	PaymentCash        = "cash"
)

// Order representa la cabecera de un pedido. Los montos se fijan al crearlo.
type Order struct {
	ID                    string
	UserID                string
	Status                string
	DeliveryMode          string
	PaymentMethod         string
	Subtotal              decimal.Decimal
	DeliveryFee           decimal.Decimal
	Total                 decimal.Decimal // Subtotal + DeliveryFee
	DeliveryAddress       string
	CustomerNotes         string
	EstimatedDeliveryTime time.Time
	Items                 []OrderItem
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IsValidDeliveryMode indica si el modo de entrega es conocido.
func IsValidDeliveryMode(mode string) bool {
	switch mode {
	case DeliveryModeDelivery, DeliveryModePickup, DeliveryModeTaftaf:
		return true
	}
	return false
}

// IsValidPaymentMethod indica si el medio de pago es conocido.
func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentOrangeMoney, PaymentWave, PaymentCard, PaymentCash:
		return true
	}
	return false
}
