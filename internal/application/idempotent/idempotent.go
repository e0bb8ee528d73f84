// Package idempotent protege operaciones no idempotentes (pedido, canje) con una clave
// enviada por el cliente. La reserva de la clave ocurre en la misma transacción que la
// operación: si la operación falla, la reserva se revierte con ella.
package idempotent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

// Do ejecuta run salvo que (key, userID, operation) ya tenga una respuesta registrada;
// en ese caso devuelve la respuesta original con replayed=true sin ejecutar run.
// Con key vacía ejecuta run directamente.
func Do[T any](
	ctx context.Context,
	repo repository.IdempotencyRepository,
	key, userID, operation string,
	run func() (*T, error),
) (out *T, replayed bool, err error) {
	if key == "" {
		out, err = run()
		return out, false, err
	}
	stored, reserved, err := repo.Reserve(ctx, key, userID, operation)
	if err != nil {
		return nil, false, fmt.Errorf("reservar clave de idempotencia: %w", err)
	}
	if !reserved {
		var prev T
		if err := json.Unmarshal(stored, &prev); err != nil {
			return nil, false, fmt.Errorf("decodificar respuesta registrada: %w", err)
		}
		return &prev, true, nil
	}

	out, err = run()
	if err != nil {
		return nil, false, err
	}
	payload, err := json.Marshal(out)
	if err != nil {
		return nil, false, fmt.Errorf("codificar respuesta: %w", err)
	}
	if err := repo.Complete(ctx, key, userID, operation, payload); err != nil {
		return nil, false, fmt.Errorf("registrar respuesta idempotente: %w", err)
	}
	return out, false, nil
}
