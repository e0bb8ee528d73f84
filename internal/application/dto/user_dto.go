package dto

import "time"

// IdentifyRequest entrada para identificar (o crear) un usuario por teléfono.
type IdentifyRequest struct {
	Phone string `json:"phone" validate:"required,min=6,max=20"`
	Name  string `json:"name" validate:"omitempty,max=100"`
}

// RegisterRequest entrada para registro explícito.
type RegisterRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Phone string `json:"phone" validate:"required,min=6,max=20"`
	Email string `json:"email" validate:"omitempty,email,max=255"`
}

// UserResponse salida de un usuario. Tier se deriva del saldo al construir la respuesta.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Points    int       `json:"points"`
	Tier      string    `json:"tier"`
	CreatedAt time.Time `json:"created_at"`
}

// IdentifyResponse usuario más indicador de si fue creado en esta llamada.
type IdentifyResponse struct {
	User    UserResponse `json:"user"`
	Created bool         `json:"created"`
}
