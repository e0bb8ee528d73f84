package repository

import (
	"context"

	"github.com/jhoicas/foodorder-api/internal/domain/entity"
)

// MenuFilter filtros de listado del catálogo. CategoryID vacío = todas; Search vacío = sin filtro.
type MenuFilter struct {
	CategoryID string
	Search     string
}

// MenuRepository puerto de solo lectura del catálogo. Solo devuelve filas activas.
type MenuRepository interface {
	ListCategories(ctx context.Context) ([]*entity.MenuCategory, error)
	ListItems(ctx context.Context, filter MenuFilter) ([]*entity.MenuItem, error)
	// GetItem devuelve (nil, nil) si el plato no existe o está inactivo.
	GetItem(ctx context.Context, id string) (*entity.MenuItem, error)
}
