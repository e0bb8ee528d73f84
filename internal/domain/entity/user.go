package entity

import "time"

// User representa un cliente identificado por su número de teléfono.
// Points es la caché materializada del libro de puntos (suma de PointsTransaction).
type User struct {
	ID        string
	Name      string
	Phone     string // único, normalizado sin espacios
	Email     string // opcional
	Points    int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
