package loyalty

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/foodorder-api/internal/application/dto"
	"github.com/jhoicas/foodorder-api/internal/application/idempotent"
	"github.com/jhoicas/foodorder-api/internal/domain"
	"github.com/jhoicas/foodorder-api/internal/domain/entity"
	domainloyalty "github.com/jhoicas/foodorder-api/internal/domain/loyalty"
	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

// HistoryLimit máximo de asientos devueltos por History.
const HistoryLimit = 50

// LoyaltyUseCase recompensas, canjes e historial de puntos.
type LoyaltyUseCase struct {
	txRunner   LoyaltyTxRunner
	userRepo   repository.UserRepository
	rewardRepo repository.RewardRepository
	pointsRepo repository.PointsTransactionRepository
}

// NewLoyaltyUseCase construye el caso de uso.
func NewLoyaltyUseCase(
	txRunner LoyaltyTxRunner,
	userRepo repository.UserRepository,
	rewardRepo repository.RewardRepository,
	pointsRepo repository.PointsTransactionRepository,
) *LoyaltyUseCase {
	return &LoyaltyUseCase{
		txRunner:   txRunner,
		userRepo:   userRepo,
		rewardRepo: rewardRepo,
		pointsRepo: pointsRepo,
	}
}

// ListRewards recompensas activas, de menor a mayor costo.
func (uc *LoyaltyUseCase) ListRewards(ctx context.Context) ([]dto.RewardResponse, error) {
	list, err := uc.rewardRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RewardResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.RewardResponse{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			PointsCost:  r.PointsCost,
			Type:        r.Type,
			Icon:        r.Icon,
		})
	}
	return out, nil
}

// Redeem canjea una recompensa: descuenta el saldo y registra el asiento negativo en la misma tx.
//
// Retorna:
//   - domain.ErrUserNotFound / domain.ErrRewardNotFound (recompensa inexistente o inactiva).
//   - domain.ErrInsufficientPoints si el saldo no alcanza; saldo y libro quedan intactos.
func (uc *LoyaltyUseCase) Redeem(ctx context.Context, in dto.RedeemRequest, idempotencyKey string) (*dto.RedeemResponse, error) {
	if in.UserID == "" || in.RewardID == "" {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.RedeemResponse
	err := uc.txRunner.RunLoyalty(ctx, func(
		userRepo repository.UserRepository,
		rewardRepo repository.RewardRepository,
		pointsRepo repository.PointsTransactionRepository,
		keyRepo repository.IdempotencyRepository,
	) error {
		// Con la fila bloqueada, un segundo canje concurrente ve el saldo ya descontado.
		user, err := userRepo.GetForUpdate(ctx, in.UserID)
		if err != nil {
			return fmt.Errorf("bloquear usuario: %w", err)
		}
		if user == nil {
			return domain.ErrUserNotFound
		}

		res, replayed, err := idempotent.Do(ctx, keyRepo, idempotencyKey, user.ID, entity.IdempotencyOpRedeem,
			func() (*dto.RedeemResponse, error) {
				reward, err := rewardRepo.GetByID(ctx, in.RewardID)
				if err != nil {
					return nil, err
				}
				if reward == nil || !reward.IsActive {
					return nil, domain.ErrRewardNotFound
				}
				if user.Points < reward.PointsCost {
					return nil, domain.ErrInsufficientPoints
				}
				balance, err := userRepo.AddPoints(ctx, user.ID, -reward.PointsCost)
				if err != nil {
					return nil, err
				}
				if err := pointsRepo.Append(ctx, &entity.PointsTransaction{
					ID:          uuid.New().String(),
					UserID:      user.ID,
					Type:        entity.PointsTypeRedeemed,
					Points:      -reward.PointsCost,
					Source:      entity.PointsSourceReward,
					Description: reward.Name,
					RewardID:    reward.ID,
					CreatedAt:   time.Now(),
				}); err != nil {
					return nil, fmt.Errorf("registrar canje: %w", err)
				}
				return &dto.RedeemResponse{
					Message:     fmt.Sprintf("Recompensa \"%s\" canjeada", reward.Name),
					RewardID:    reward.ID,
					PointsSpent: reward.PointsCost,
					Balance:     balance,
				}, nil
			})
		if err != nil {
			return err
		}
		res.Replayed = replayed
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// History últimos HistoryLimit asientos del usuario, más recientes primero.
func (uc *LoyaltyUseCase) History(ctx context.Context, userID string) ([]dto.PointsTransactionResponse, error) {
	if _, err := uc.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	list, err := uc.pointsRepo.ListByUser(ctx, userID, HistoryLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PointsTransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.PointsTransactionResponse{
			ID:          t.ID,
			Type:        t.Type,
			Points:      t.Points,
			Source:      t.Source,
			Description: t.Description,
			OrderID:     t.OrderID,
			RewardID:    t.RewardID,
			CreatedAt:   t.CreatedAt,
		})
	}
	return out, nil
}

// Summary saldo, nivel y avance hacia el siguiente nivel.
func (uc *LoyaltyUseCase) Summary(ctx context.Context, userID string) (*dto.LoyaltySummaryResponse, error) {
	user, err := uc.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	next, missing, percent := domainloyalty.Progress(user.Points)
	return &dto.LoyaltySummaryResponse{
		UserID:           user.ID,
		Points:           user.Points,
		Tier:             domainloyalty.TierFor(user.Points),
		NextTier:         next,
		PointsToNextTier: missing,
		ProgressPercent:  percent,
	}, nil
}

func (uc *LoyaltyUseCase) requireUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
