package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/foodorder-api/internal/domain"
	"github.com/jhoicas/foodorder-api/internal/domain/entity"
	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// pointsConstraint CHECK (points >= 0) de la tabla users.
const pointsConstraint = "users_points_non_negative"

const userColumns = `id, name, phone, COALESCE(email, ''), points, is_active, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. El índice único de phone resuelve altas concurrentes.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, phone, email, points, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Name, user.Phone, nullIfEmpty(user.Email), user.Points, user.IsActive,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPhoneAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validUUID(id) {
		return nil, nil
	}
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByPhone obtiene un usuario por teléfono normalizado.
func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1`, phone)
}

// GetForUpdate obtiene el usuario y bloquea la fila (SELECT FOR UPDATE). Solo tiene efecto dentro de una tx.
func (r *UserRepo) GetForUpdate(ctx context.Context, id string) (*entity.User, error) {
	if !validUUID(id) {
		return nil, nil
	}
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
}

// AddPoints suma delta al saldo. El CHECK de la tabla rechaza saldos negativos.
func (r *UserRepo) AddPoints(ctx context.Context, id string, delta int) (int, error) {
	query := `
		UPDATE users SET points = points + $2, updated_at = now()
		WHERE id = $1
		RETURNING points`
	var balance int
	err := r.q.QueryRow(ctx, query, id, delta).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		if isCheckViolation(err, pointsConstraint) {
			return 0, domain.ErrInsufficientPoints
		}
		return 0, fmt.Errorf("update user points: %w", err)
	}
	return balance, nil
}

func (r *UserRepo) findOne(ctx context.Context, query string, arg string) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Phone, &u.Email, &u.Points, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
