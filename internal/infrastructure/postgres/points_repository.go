package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/foodorder-api/internal/domain/entity"
	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

var _ repository.PointsTransactionRepository = (*PointsRepo)(nil)

// PointsRepo libro de puntos. Sin UPDATE ni DELETE.
type PointsRepo struct {
	q Querier
}

// NewPointsRepository construye el adaptador del libro de puntos.
func NewPointsRepository(q Querier) *PointsRepo {
	return &PointsRepo{q: q}
}

// Append inserta un asiento.
func (r *PointsRepo) Append(ctx context.Context, t *entity.PointsTransaction) error {
	query := `
		INSERT INTO points_transactions (id, user_id, type, points, source, description, order_id, reward_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.UserID, t.Type, t.Points, t.Source, t.Description,
		nullIfEmpty(t.OrderID), nullIfEmpty(t.RewardID), t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert points transaction: %w", err)
	}
	return nil
}

// ListByUser asientos del usuario, más recientes primero.
func (r *PointsRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.PointsTransaction, error) {
	if !validUUID(userID) {
		return nil, nil
	}
	query := `
		SELECT id, user_id, type, points, source, COALESCE(description, ''),
		       COALESCE(order_id::text, ''), COALESCE(reward_id::text, ''), created_at
		FROM points_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list points transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.PointsTransaction
	for rows.Next() {
		var t entity.PointsTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Points, &t.Source, &t.Description,
			&t.OrderID, &t.RewardID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan points transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
