package loyalty_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foodorder-api/internal/application/apptest"
	"github.com/jhoicas/foodorder-api/internal/application/dto"
	"github.com/jhoicas/foodorder-api/internal/application/loyalty"
	"github.com/jhoicas/foodorder-api/internal/domain"
	"github.com/jhoicas/foodorder-api/internal/domain/entity"
	domainloyalty "github.com/jhoicas/foodorder-api/internal/domain/loyalty"
)

func newLoyaltyUseCase() (*loyalty.LoyaltyUseCase, *apptest.Store) {
	store := apptest.NewStore()
	return loyalty.NewLoyaltyUseCase(store, store.Users(), store.Rewards(), store.Points()), store
}

// ──────────────────────────────────────────────────────────────────────────────
// Redeem
// ──────────────────────────────────────────────────────────────────────────────

// 150 puntos, recompensa de 100 → saldo 50 y un asiento de −100.
func TestRedeem_DescuentaSaldoYRegistraAsiento(t *testing.T) {
	uc, store := newLoyaltyUseCase()
	user := store.SeedUser("Awa", "771234567", 150)
	reward := store.SeedReward("Boisson offerte", 100, true)

	res, err := uc.Redeem(context.Background(), dto.RedeemRequest{UserID: user.ID, RewardID: reward.ID}, "")
	require.NoError(t, err)
	assert.Equal(t, 100, res.PointsSpent)
	assert.Equal(t, 50, res.Balance)
	assert.Contains(t, res.Message, "Boisson offerte")

	ledger := store.Ledger(user.ID)
	require.Len(t, ledger, 2)
	last := ledger[1]
	assert.Equal(t, entity.PointsTypeRedeemed, last.Type)
	assert.Equal(t, entity.PointsSourceReward, last.Source)
	assert.Equal(t, -100, last.Points)
	assert.Equal(t, reward.ID, last.RewardID)
	assert.Equal(t, 50, store.Balance(user.ID))
	assert.Equal(t, store.Balance(user.ID), store.LedgerSum(user.ID))
}

func TestRedeem_SaldoInsuficienteNoModificaNada(t *testing.T) {
	uc, store := newLoyaltyUseCase()
	user := store.SeedUser("Awa", "771234567", 99)
	reward := store.SeedReward("Boisson offerte", 100, true)

	_, err := uc.Redeem(context.Background(), dto.RedeemRequest{UserID: user.ID, RewardID: reward.ID}, "")
	assert.ErrorIs(t, err, domain.ErrInsufficientPoints)
	assert.Equal(t, 99, store.Balance(user.ID))
	assert.Len(t, store.Ledger(user.ID), 1)
}

func TestRedeem_SaldoExactoQuedaEnCero(t *testing.T) {
	uc, store := newLoyaltyUseCase()
	user := store.SeedUser("Awa", "771234567", 100)
	reward := store.SeedReward("Boisson offerte", 100, true)

	res, err := uc.Redeem(context.Background(), dto.RedeemRequest{UserID: user.ID, RewardID: reward.ID}, "")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Balance)
}

func TestRedeem_RecompensaInactivaOInexistente(t *testing.T) {
	uc, store := newLoyaltyUseCase()
	user := store.SeedUser("Awa", "771234567", 1000)
	inactive := store.SeedReward("Ancienne offre", 10, false)

	_, err := uc.Redeem(context.Background(), dto.RedeemRequest{UserID: user.ID, RewardID: inactive.ID}, "")
	assert.ErrorIs(t, err, domain.ErrRewardNotFound)

	_, err = uc.Redeem(context.Background(), dto.RedeemRequest{UserID: user.ID, RewardID: "no-existe"}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Redeem(context.Background(), dto.RedeemRequest{UserID: "fantasma", RewardID: inactive.ID}, "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.Equal(t, 1000, store.Balance(user.ID))
}

// Dos canjes concurrentes con saldo exacto para uno: exactamente uno gana.
func TestRedeem_ConcurrentesConSaldoExacto(t *testing.T) {
	uc, store := newLoyaltyUseCase()
	user := store.SeedUser("Awa", "771234567", 100)
	reward := store.SeedReward("Boisson offerte", 100, true)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Redeem(context.Background(), dto.RedeemRequest{UserID: user.ID, RewardID: reward.ID}, "")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if assert.ErrorIs(t, err, domain.ErrInsufficientPoints) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, rejected)
	assert.Equal(t, 0, store.Balance(user.ID))
	assert.Equal(t, 0, store.LedgerSum(user.ID))
}

func TestRedeem_ClaveRepetidaNoDescuentaDosVeces(t *testing.T) {
	uc, store := newLoyaltyUseCase()
	user := store.SeedUser("Awa", "771234567", 300)
	reward := store.SeedReward("Livraison offerte", 100, true)
	req := dto.RedeemRequest{UserID: user.ID, RewardID: reward.ID}

	first, err := uc.Redeem(context.Background(), req, "redeem-1")
	require.NoError(t, err)
	second, err := uc.Redeem(context.Background(), req, "redeem-1")
	require.NoError(t, err)

	assert.False(t, first.Replayed)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.Balance, second.Balance)
	assert.Equal(t, 200, store.Balance(user.ID))
	assert.Len(t, store.Ledger(user.ID), 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestListRewards_SoloActivasDeMenorAMayorCosto(t *testing.T) {
	uc, store := newLoyaltyUseCase()
	store.SeedReward("Menu complet", 500, true)
	store.SeedReward("Boisson offerte", 100, true)
	store.SeedReward("Ancienne offre", 10, false)

	list, err := uc.ListRewards(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Boisson offerte", list[0].Name)
	assert.Equal(t, "Menu complet", list[1].Name)
}

func TestHistory_MasRecientesPrimeroConLimite(t *testing.T) {
	uc, store := newLoyaltyUseCase()
	user := store.SeedUser("Awa", "771234567", 10000)
	reward := store.SeedReward("Boisson offerte", 10, true)
	for i := 0; i < loyalty.HistoryLimit+5; i++ {
		_, err := uc.Redeem(context.Background(), dto.RedeemRequest{UserID: user.ID, RewardID: reward.ID}, "")
		require.NoError(t, err)
	}

	list, err := uc.History(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, list, loyalty.HistoryLimit)
	assert.Equal(t, entity.PointsTypeRedeemed, list[0].Type)
	for _, tx := range list {
		assert.Equal(t, entity.PointsSourceReward, tx.Source)
	}

	_, err = uc.History(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSummary_NivelYAvance(t *testing.T) {
	uc, store := newLoyaltyUseCase()
	user := store.SeedUser("Awa", "771234567", 1000)

	sum, err := uc.Summary(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000, sum.Points)
	assert.Equal(t, domainloyalty.TierSilver, sum.Tier)
	assert.Equal(t, domainloyalty.TierGold, sum.NextTier)
	assert.Equal(t, 500, sum.PointsToNextTier)
	assert.Equal(t, 50, sum.ProgressPercent)
}
