package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/foodorder-api/internal/domain/entity"
	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo carritos por sesión; las líneas se guardan como jsonb.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador de carritos.
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// Get devuelve el carrito de la sesión, o uno vacío si no existe.
func (r *CartRepo) Get(ctx context.Context, sessionID string) (*entity.Cart, error) {
	c := entity.Cart{SessionID: sessionID}
	err := r.q.QueryRow(ctx, `SELECT lines, updated_at FROM carts WHERE session_id = $1`, sessionID).
		Scan(&c.Lines, &c.UpdatedAt)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if c.Lines == nil {
		c.Lines = []entity.CartLine{}
	}
	return &c, nil
}

// Save reemplaza las líneas del carrito.
func (r *CartRepo) Save(ctx context.Context, c *entity.Cart) error {
	lines := c.Lines
	if lines == nil {
		lines = []entity.CartLine{}
	}
	query := `
		INSERT INTO carts (session_id, lines, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id)
		DO UPDATE SET lines = EXCLUDED.lines, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, c.SessionID, lines, c.UpdatedAt); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Delete elimina el carrito de la sesión (sin error si no existía).
func (r *CartRepo) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM carts WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
