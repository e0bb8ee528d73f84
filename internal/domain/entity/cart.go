package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart carrito de una sesión de navegación (un solo escritor).
type Cart struct {
	SessionID string
	Lines     []CartLine
	UpdatedAt time.Time
}

// CartLine línea del carrito. UnitPrice = precio base + variante + personalizaciones, fijado al agregar.
type CartLine struct {
	ID             string                  `json:"id"`
	MenuItemID     string                  `json:"menu_item_id"`
	MenuItemName   string                  `json:"menu_item_name"`
	VariantID      string                  `json:"variant_id"`
	VariantName    string                  `json:"variant_name"`
	Customizations []CustomizationSnapshot `json:"customizations"`
	Quantity       int                     `json:"quantity"`
	UnitPrice      decimal.Decimal         `json:"unit_price"`
}

// Subtotal suma UnitPrice × Quantity de todas las líneas.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}
