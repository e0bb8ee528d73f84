package entity

import "time"

// MenuCategory agrupa platos del menú (pizzas, bebidas, postres...).
type MenuCategory struct {
	ID           string
	Name         string
	Icon         string
	DisplayOrder int
	IsActive     bool
	CreatedAt    time.Time
}
