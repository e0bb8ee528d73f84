package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/foodorder-api/internal/application/directory"
	"github.com/jhoicas/foodorder-api/internal/application/loyalty"
	"github.com/jhoicas/foodorder-api/internal/application/ordering"
	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

var (
	_ directory.TxRunner      = (*TxRunner)(nil)
	_ ordering.OrderTxRunner  = (*TxRunner)(nil)
	_ loyalty.LoyaltyTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia la transacción, ejecuta fn y hace Commit, o Rollback si fn falla.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunDirectory alta de usuario con su bono de bienvenida.
func (r *TxRunner) RunDirectory(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	pointsRepo repository.PointsTransactionRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewUserRepository(tx), NewPointsRepository(tx))
	})
}

// RunOrder creación de pedidos y cambios de estado.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	pointsRepo repository.PointsTransactionRepository,
	keyRepo repository.IdempotencyRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewUserRepository(tx), NewOrderRepository(tx), NewPointsRepository(tx), NewIdempotencyRepository(tx))
	})
}

// RunLoyalty canje de recompensas.
func (r *TxRunner) RunLoyalty(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	rewardRepo repository.RewardRepository,
	pointsRepo repository.PointsTransactionRepository,
	keyRepo repository.IdempotencyRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewUserRepository(tx), NewRewardRepository(tx), NewPointsRepository(tx), NewIdempotencyRepository(tx))
	})
}
