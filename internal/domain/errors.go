package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = fmt.Errorf("%w: usuario", ErrNotFound)
	ErrRewardNotFound     = fmt.Errorf("%w: recompensa", ErrNotFound)
	ErrOrderNotFound      = fmt.Errorf("%w: pedido", ErrNotFound)
	ErrMenuItemNotFound   = fmt.Errorf("%w: plato", ErrNotFound)
	ErrCartLineNotFound   = fmt.Errorf("%w: línea de carrito", ErrNotFound)
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrEmptyCart          = fmt.Errorf("%w: carrito vacío", ErrInvalidInput)
	ErrNameRequired       = fmt.Errorf("%w: nombre requerido para un usuario nuevo", ErrInvalidInput)
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrPhoneAlreadyExists = fmt.Errorf("%w: el teléfono ya está registrado", ErrConflict)
	ErrInvalidTransition  = fmt.Errorf("%w: transición de estado no permitida", ErrConflict)
	ErrInsufficientPoints = errors.New("puntos insuficientes")
)
