package directory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/foodorder-api/internal/application/dto"
	"github.com/jhoicas/foodorder-api/internal/domain"
	"github.com/jhoicas/foodorder-api/internal/domain/entity"
	"github.com/jhoicas/foodorder-api/internal/domain/loyalty"
	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

// DirectoryUseCase identificación de clientes por teléfono (sin contraseña).
type DirectoryUseCase struct {
	txRunner TxRunner
	userRepo repository.UserRepository
}

// NewDirectoryUseCase construye el caso de uso.
func NewDirectoryUseCase(txRunner TxRunner, userRepo repository.UserRepository) *DirectoryUseCase {
	return &DirectoryUseCase{txRunner: txRunner, userRepo: userRepo}
}

// Identify busca por teléfono. Si no existe y hay nombre, crea el usuario con el bono de bienvenida.
// Sin nombre para un teléfono nuevo devuelve domain.ErrNameRequired.
func (uc *DirectoryUseCase) Identify(ctx context.Context, in dto.IdentifyRequest) (*dto.IdentifyResponse, error) {
	phone := NormalizePhone(in.Phone)
	if phone == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &dto.IdentifyResponse{User: *ToUserResponse(existing)}, nil
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	user, err := uc.create(ctx, name, phone, "")
	if errors.Is(err, domain.ErrPhoneAlreadyExists) {
		// Otra petición creó el mismo teléfono entre la búsqueda y el insert.
		existing, err = uc.userRepo.GetByPhone(ctx, phone)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, domain.ErrPhoneAlreadyExists
		}
		return &dto.IdentifyResponse{User: *ToUserResponse(existing)}, nil
	}
	if err != nil {
		return nil, err
	}
	return &dto.IdentifyResponse{User: *ToUserResponse(user), Created: true}, nil
}

// Register crea un usuario. Devuelve domain.ErrPhoneAlreadyExists si el teléfono ya existe.
func (uc *DirectoryUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	phone := NormalizePhone(in.Phone)
	name := strings.TrimSpace(in.Name)
	if phone == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrPhoneAlreadyExists
	}
	user, err := uc.create(ctx, name, phone, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// GetUser obtiene un usuario por ID.
func (uc *DirectoryUseCase) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// create inserta el usuario con el saldo del bono y su asiento en el libro, en la misma tx.
func (uc *DirectoryUseCase) create(ctx context.Context, name, phone, email string) (*entity.User, error) {
	now := time.Now()
	user := &entity.User{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Email:     email,
		Points:    loyalty.SignupBonus,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.RunDirectory(ctx, func(
		userRepo repository.UserRepository,
		pointsRepo repository.PointsTransactionRepository,
	) error {
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		return pointsRepo.Append(ctx, &entity.PointsTransaction{
			ID:          uuid.New().String(),
			UserID:      user.ID,
			Type:        entity.PointsTypeEarned,
			Points:      loyalty.SignupBonus,
			Source:      entity.PointsSourceSignup,
			Description: "Bono de bienvenida",
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// NormalizePhone elimina espacios, guiones, puntos y paréntesis ("77 123 45 67" -> "771234567").
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(phone) {
		switch r {
		case ' ', '-', '.', '(', ')', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToUserResponse convierte la entidad; el nivel se calcula desde el saldo actual.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Phone:     u.Phone,
		Email:     u.Email,
		Points:    u.Points,
		Tier:      loyalty.TierFor(u.Points),
		CreatedAt: u.CreatedAt,
	}
}
