package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomizationSnapshotDTO personalización elegida tal como se cobró.
type CustomizationSnapshotDTO struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// OrderLineRequest línea de carrito enviada al pagar. UnitPrice ya incluye variante y extras.
// VariantID vacío para platos sin variantes.
type OrderLineRequest struct {
	MenuItemID     string                     `json:"menu_item_id" validate:"required"`
	MenuItemName   string                     `json:"menu_item_name"`
	VariantID      string                     `json:"variant_id"`
	VariantName    string                     `json:"variant_name"`
	Customizations []CustomizationSnapshotDTO `json:"customizations"`
	Quantity       int                        `json:"quantity" validate:"min=1,max=99"`
	UnitPrice      decimal.Decimal            `json:"unit_price"`
}

// PlaceOrderRequest body para POST /api/orders.
type PlaceOrderRequest struct {
	UserID          string             `json:"user_id" validate:"required"`
	Items           []OrderLineRequest `json:"items" validate:"dive"`
	DeliveryMode    string             `json:"delivery_mode" validate:"required,oneof=delivery pickup taftaf"`
	PaymentMethod   string             `json:"payment_method" validate:"required,oneof=orange_money wave card cash"`
	DeliveryAddress string             `json:"delivery_address" validate:"omitempty,max=500"`
	CustomerNotes   string             `json:"customer_notes" validate:"omitempty,max=1000"`
}

// PlaceOrderResponse resultado de crear un pedido.
type PlaceOrderResponse struct {
	OrderID               string          `json:"order_id"`
	PointsEarned          int             `json:"points_earned"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	DeliveryFee           decimal.Decimal `json:"delivery_fee"`
	Total                 decimal.Decimal `json:"total"`
	EstimatedDeliveryTime time.Time       `json:"estimated_delivery_time"`
	Replayed              bool            `json:"replayed,omitempty"`
}

// OrderItemResponse línea de pedido con referencia al catálogo.
type OrderItemResponse struct {
	ID             string                     `json:"id"`
	MenuItemID     string                     `json:"menu_item_id"`
	MenuItemName   string                     `json:"menu_item_name"`
	MenuItemImage  string                     `json:"menu_item_image,omitempty"`
	CategoryName   string                     `json:"category_name,omitempty"`
	VariantID      string                     `json:"variant_id"`
	VariantName    string                     `json:"variant_name"`
	Customizations []CustomizationSnapshotDTO `json:"customizations"`
	Quantity       int                        `json:"quantity"`
	UnitPrice      decimal.Decimal            `json:"unit_price"`
	TotalPrice     decimal.Decimal            `json:"total_price"`
}

// OrderResponse pedido completo.
type OrderResponse struct {
	ID                    string              `json:"id"`
	UserID                string              `json:"user_id"`
	Status                string              `json:"status"`
	NextStatus            string              `json:"next_status,omitempty"`
	DeliveryMode          string              `json:"delivery_mode"`
	PaymentMethod         string              `json:"payment_method"`
	Subtotal              decimal.Decimal     `json:"subtotal"`
	DeliveryFee           decimal.Decimal     `json:"delivery_fee"`
	Total                 decimal.Decimal     `json:"total"`
	DeliveryAddress       string              `json:"delivery_address,omitempty"`
	CustomerNotes         string              `json:"customer_notes,omitempty"`
	EstimatedDeliveryTime time.Time           `json:"estimated_delivery_time"`
	Items                 []OrderItemResponse `json:"items"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed preparing ready picked_up delivered cancelled"`
}
