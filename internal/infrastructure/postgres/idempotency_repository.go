package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

var _ repository.IdempotencyRepository = (*IdempotencyRepo)(nil)

// IdempotencyRepo claves de idempotencia. Debe usarse con la tx de la operación protegida:
// un INSERT concurrente con la misma clave espera al commit o rollback de la primera.
type IdempotencyRepo struct {
	q Querier
}

// NewIdempotencyRepository construye el adaptador.
func NewIdempotencyRepository(q Querier) *IdempotencyRepo {
	return &IdempotencyRepo{q: q}
}

// Reserve inserta la clave; si ya existía devuelve la respuesta registrada.
func (r *IdempotencyRepo) Reserve(ctx context.Context, key, userID, operation string) ([]byte, bool, error) {
	tag, err := r.q.Exec(ctx, `
		INSERT INTO idempotency_keys (user_id, operation, key, created_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, operation, key) DO NOTHING`, userID, operation, key)
	if err != nil {
		return nil, false, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil, true, nil
	}
	var stored []byte
	err = r.q.QueryRow(ctx, `
		SELECT response FROM idempotency_keys
		WHERE user_id = $1 AND operation = $2 AND key = $3`, userID, operation, key).Scan(&stored)
	if err != nil {
		return nil, false, fmt.Errorf("read idempotency key: %w", err)
	}
	return stored, false, nil
}

// Complete guarda la respuesta de la clave reservada.
func (r *IdempotencyRepo) Complete(ctx context.Context, key, userID, operation string, response []byte) error {
	_, err := r.q.Exec(ctx, `
		UPDATE idempotency_keys SET response = $4
		WHERE user_id = $1 AND operation = $2 AND key = $3`, userID, operation, key, response)
	if err != nil {
		return fmt.Errorf("complete idempotency key: %w", err)
	}
	return nil
}
