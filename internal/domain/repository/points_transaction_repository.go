package repository

import (
	"context"

	"github.com/jhoicas/foodorder-api/internal/domain/entity"
)

// PointsTransactionRepository libro de puntos: solo inserción y lectura.
type PointsTransactionRepository interface {
	Append(ctx context.Context, tx *entity.PointsTransaction) error
	// ListByUser más recientes primero, como máximo limit filas.
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.PointsTransaction, error)
}
