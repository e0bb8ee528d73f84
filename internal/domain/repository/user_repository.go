package repository

import (
	"context"

	"github.com/jhoicas/foodorder-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByPhone(ctx context.Context, phone string) (*entity.User, error)
	// GetForUpdate bloquea la fila del usuario (SELECT FOR UPDATE) hasta el fin de la tx.
	GetForUpdate(ctx context.Context, id string) (*entity.User, error)
	// AddPoints suma delta (puede ser negativo) al saldo y devuelve el nuevo saldo.
	// Devuelve domain.ErrInsufficientPoints si el saldo quedaría negativo.
	AddPoints(ctx context.Context, id string, delta int) (int, error)
}
