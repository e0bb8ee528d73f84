package repository

import "context"

// IdempotencyRepository registra claves de idempotencia dentro de la misma tx que la operación.
type IdempotencyRepository interface {
	// Reserve intenta reservar la clave. Si ya existía devuelve reserved=false y la respuesta guardada.
	Reserve(ctx context.Context, key, userID, operation string) (stored []byte, reserved bool, err error)
	// Complete guarda la respuesta de una clave reservada.
	Complete(ctx context.Context, key, userID, operation string, response []byte) error
}
