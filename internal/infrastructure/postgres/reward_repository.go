package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/foodorder-api/internal/domain/entity"
	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

var _ repository.RewardRepository = (*RewardRepo)(nil)

const rewardColumns = `id, name, COALESCE(description, ''), points_cost, type, COALESCE(icon, ''), is_active, created_at`

// RewardRepo lectura de recompensas.
type RewardRepo struct {
	q Querier
}

// NewRewardRepository construye el adaptador de recompensas.
func NewRewardRepository(q Querier) *RewardRepo {
	return &RewardRepo{q: q}
}

// ListActive recompensas activas, de menor a mayor costo.
func (r *RewardRepo) ListActive(ctx context.Context) ([]*entity.LoyaltyReward, error) {
	rows, err := r.q.Query(ctx, `SELECT `+rewardColumns+` FROM loyalty_rewards WHERE is_active ORDER BY points_cost, name`)
	if err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}
	defer rows.Close()
	var list []*entity.LoyaltyReward
	for rows.Next() {
		var rw entity.LoyaltyReward
		if err := rows.Scan(&rw.ID, &rw.Name, &rw.Description, &rw.PointsCost, &rw.Type, &rw.Icon, &rw.IsActive, &rw.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reward: %w", err)
		}
		list = append(list, &rw)
	}
	return list, rows.Err()
}

// GetByID recompensa por ID, activa o no. El caso de uso decide sobre is_active.
func (r *RewardRepo) GetByID(ctx context.Context, id string) (*entity.LoyaltyReward, error) {
	if !validUUID(id) {
		return nil, nil
	}
	var rw entity.LoyaltyReward
	err := r.q.QueryRow(ctx, `SELECT `+rewardColumns+` FROM loyalty_rewards WHERE id = $1`, id).Scan(
		&rw.ID, &rw.Name, &rw.Description, &rw.PointsCost, &rw.Type, &rw.Icon, &rw.IsActive, &rw.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reward: %w", err)
	}
	return &rw, nil
}
