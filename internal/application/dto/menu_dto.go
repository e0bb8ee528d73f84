package dto

import "github.com/shopspring/decimal"

// CategoryResponse salida de una categoría del menú.
type CategoryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	DisplayOrder int    `json:"display_order"`
}

// CategoryRef referencia corta a la categoría dentro de un plato.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// VariantResponse variante activa de un plato.
type VariantResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	IsDefault bool            `json:"is_default"`
}

// CustomizationResponse personalización activa de un plato.
type CustomizationResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	IsFree   bool            `json:"is_free"`
	Category string          `json:"category"`
}

// MenuItemResponse plato con variantes y personalizaciones activas.
type MenuItemResponse struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Description     string                  `json:"description"`
	CategoryID      string                  `json:"category_id"`
	Category        *CategoryRef            `json:"category,omitempty"`
	BasePrice       decimal.Decimal         `json:"base_price"`
	Image           string                  `json:"image"`
	InStock         bool                    `json:"in_stock"`
	Rating          decimal.Decimal         `json:"rating"`
	PreparationTime int                     `json:"preparation_time"`
	Variants        []VariantResponse       `json:"variants"`
	Customizations  []CustomizationResponse `json:"customizations"`
}
