package repository

import (
	"context"
	"time"

	"github.com/jhoicas/foodorder-api/internal/domain/entity"
)

// OrderRepository puerto de persistencia para pedidos y sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	// GetByID devuelve el pedido con sus líneas, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea la cabecera del pedido (sin líneas).
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// ListByUser pedidos del usuario, más recientes primero, con líneas.
	ListByUser(ctx context.Context, userID string) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
}
