package entity

import "github.com/shopspring/decimal"

// CustomizationSnapshot copia inmutable de una personalización elegida.
type CustomizationSnapshot struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// OrderItem línea de pedido. UnitPrice y TotalPrice nunca se recalculan desde el catálogo.
type OrderItem struct {
	ID             string
	OrderID        string
	MenuItemID     string
	MenuItemName   string
	MenuItemImage  string // solo lectura, desde el catálogo actual
	CategoryName   string // solo lectura, desde el catálogo actual
	VariantID      string
	VariantName    string
	Customizations []CustomizationSnapshot
	Quantity       int
	UnitPrice      decimal.Decimal
	TotalPrice     decimal.Decimal
}
