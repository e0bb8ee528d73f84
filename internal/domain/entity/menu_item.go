package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías válidas de personalización.
const (
	CustomizationSauce = "sauce"
	CustomizationExtra = "extra"
	CustomizationSide  = "side"
)

// MenuItem representa un plato del catálogo con sus variantes y personalizaciones activas.
type MenuItem struct {
	ID              string
	Name            string
	Description     string
	CategoryID      string
	Category        *MenuCategory // opcional, cargado en listados
	BasePrice       decimal.Decimal
	Image           string
	InStock         bool
	Rating          decimal.Decimal
	PreparationTime int // minutos
	IsActive        bool
	Variants        []MenuVariant
	Customizations  []MenuCustomization
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MenuVariant tamaño o versión de un plato. Price es un delta sobre BasePrice.
type MenuVariant struct {
	ID         string
	MenuItemID string
	Name       string
	Price      decimal.Decimal
	IsDefault  bool
	IsActive   bool
}

// MenuCustomization extra, salsa o acompañamiento. Price es un delta sobre BasePrice.
type MenuCustomization struct {
	ID         string
	MenuItemID string
	Name       string
	Price      decimal.Decimal
	IsFree     bool
	Category   string // sauce, extra, side
	IsActive   bool
}

// DefaultVariant devuelve la variante marcada por defecto, o la primera si ninguna lo está.
func (m *MenuItem) DefaultVariant() (MenuVariant, bool) {
	for _, v := range m.Variants {
		if v.IsDefault {
			return v, true
		}
	}
	if len(m.Variants) > 0 {
		return m.Variants[0], true
	}
	return MenuVariant{}, false
}

// FindVariant busca una variante activa del plato por ID.
func (m *MenuItem) FindVariant(id string) (MenuVariant, bool) {
	for _, v := range m.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return MenuVariant{}, false
}

// FindCustomization busca una personalización activa del plato por ID.
func (m *MenuItem) FindCustomization(id string) (MenuCustomization, bool) {
	for _, c := range m.Customizations {
		if c.ID == id {
			return c, true
		}
	}
	return MenuCustomization{}, false
}
