package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddCartLineRequest body para POST /api/cart/:session/lines. VariantID vacío = variante por defecto.
type AddCartLineRequest struct {
	MenuItemID       string   `json:"menu_item_id" validate:"required"`
	VariantID        string   `json:"variant_id"`
	CustomizationIDs []string `json:"customization_ids"`
	Quantity         int      `json:"quantity" validate:"min=1,max=99"`
}

// UpdateCartLineRequest body para PATCH /api/cart/:session/lines/:line. 0 elimina la línea.
type UpdateCartLineRequest struct {
	Quantity int `json:"quantity" validate:"min=0,max=99"`
}

// CheckoutRequest body para POST /api/cart/:session/checkout.
type CheckoutRequest struct {
	UserID          string `json:"user_id" validate:"required"`
	DeliveryMode    string `json:"delivery_mode" validate:"required,oneof=delivery pickup taftaf"`
	PaymentMethod   string `json:"payment_method" validate:"required,oneof=orange_money wave card cash"`
	DeliveryAddress string `json:"delivery_address" validate:"omitempty,max=500"`
	CustomerNotes   string `json:"customer_notes" validate:"omitempty,max=1000"`
}

// CartLineResponse línea del carrito con su total.
type CartLineResponse struct {
	ID             string                     `json:"id"`
	MenuItemID     string                     `json:"menu_item_id"`
	MenuItemName   string                     `json:"menu_item_name"`
	VariantID      string                     `json:"variant_id"`
	VariantName    string                     `json:"variant_name"`
	Customizations []CustomizationSnapshotDTO `json:"customizations"`
	Quantity       int                        `json:"quantity"`
	UnitPrice      decimal.Decimal            `json:"unit_price"`
	LineTotal      decimal.Decimal            `json:"line_total"`
}

// CartResponse carrito de la sesión.
type CartResponse struct {
	SessionID string             `json:"session_id"`
	Lines     []CartLineResponse `json:"lines"`
	ItemCount int                `json:"item_count"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	UpdatedAt time.Time          `json:"updated_at"`
}
