package repository

import (
	"context"

	"github.com/jhoicas/foodorder-api/internal/domain/entity"
)

// CartRepository almacén clave-valor de carritos por sesión.
type CartRepository interface {
	// Get devuelve un carrito vacío si la sesión no tiene carrito.
	Get(ctx context.Context, sessionID string) (*entity.Cart, error)
	Save(ctx context.Context, cart *entity.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
