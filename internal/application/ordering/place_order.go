package ordering

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/foodorder-api/internal/application/dto"
	"github.com/jhoicas/foodorder-api/internal/application/idempotent"
	"github.com/jhoicas/foodorder-api/internal/domain"
	"github.com/jhoicas/foodorder-api/internal/domain/entity"
	domainordering "github.com/jhoicas/foodorder-api/internal/domain/ordering"
	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

// OrderUseCase crea pedidos, los consulta y avanza su estado.
type OrderUseCase struct {
	txRunner  OrderTxRunner
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	now       func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner OrderTxRunner, orderRepo repository.OrderRepository, userRepo repository.UserRepository) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, orderRepo: orderRepo, userRepo: userRepo, now: time.Now}
}

// PlaceOrder crea el pedido con sus líneas y acredita los puntos ganados en una sola transacción.
// Los precios unitarios son los de cada línea (fijados en el carrito), nunca el precio vigente del menú.
//
// Retorna:
//   - domain.ErrEmptyCart / domain.ErrInvalidInput si las líneas o el modo no son válidos.
//   - domain.ErrUserNotFound si el usuario no existe.
//
// Con idempotencyKey no vacía, una repetición devuelve el primer resultado sin escribir nada,
// aunque el cuerpo de la repetición difiera (por ejemplo, un carrito ya vaciado).
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, in dto.PlaceOrderRequest, idempotencyKey string) (*dto.PlaceOrderResponse, error) {
	if in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.PlaceOrderResponse
	err := uc.txRunner.RunOrder(ctx, func(
		userRepo repository.UserRepository,
		orderRepo repository.OrderRepository,
		pointsRepo repository.PointsTransactionRepository,
		keyRepo repository.IdempotencyRepository,
	) error {
		// El bloqueo del usuario va primero: serializa con canjes concurrentes.
		user, err := userRepo.GetForUpdate(ctx, in.UserID)
		if err != nil {
			return fmt.Errorf("bloquear usuario: %w", err)
		}
		if user == nil {
			return domain.ErrUserNotFound
		}

		res, replayed, err := idempotent.Do(ctx, keyRepo, idempotencyKey, user.ID, entity.IdempotencyOpPlaceOrder,
			func() (*dto.PlaceOrderResponse, error) {
				if err := validatePlaceOrder(in); err != nil {
					return nil, err
				}
				return uc.writeOrder(ctx, orderRepo, userRepo, pointsRepo, user.ID, in)
			})
		if err != nil {
			return err
		}
		res.Replayed = replayed
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *OrderUseCase) writeOrder(
	ctx context.Context,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	pointsRepo repository.PointsTransactionRepository,
	userID string,
	in dto.PlaceOrderRequest,
) (*dto.PlaceOrderResponse, error) {
	lines := make([]domainordering.Line, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, domainordering.Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity})
	}
	totals := domainordering.ComputeTotals(lines, in.DeliveryMode)

	now := uc.now()
	order := &entity.Order{
		ID:                    uuid.New().String(),
		UserID:                userID,
		Status:                entity.OrderStatusPending,
		DeliveryMode:          in.DeliveryMode,
		PaymentMethod:         in.PaymentMethod,
		Subtotal:              totals.Subtotal,
		DeliveryFee:           totals.DeliveryFee,
		Total:                 totals.Total,
		DeliveryAddress:       strings.TrimSpace(in.DeliveryAddress),
		CustomerNotes:         strings.TrimSpace(in.CustomerNotes),
		EstimatedDeliveryTime: now.Add(domainordering.EstimatedDeliveryDelay),
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("crear pedido: %w", err)
	}

	for _, it := range in.Items {
		custom := make([]entity.CustomizationSnapshot, 0, len(it.Customizations))
		for _, c := range it.Customizations {
			custom = append(custom, entity.CustomizationSnapshot{ID: c.ID, Name: c.Name, Price: c.Price})
		}
		item := &entity.OrderItem{
			ID:             uuid.New().String(),
			OrderID:        order.ID,
			MenuItemID:     it.MenuItemID,
			MenuItemName:   it.MenuItemName,
			VariantID:      it.VariantID,
			VariantName:    it.VariantName,
			Customizations: custom,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			TotalPrice:     it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
		}
		if err := orderRepo.CreateItem(ctx, item); err != nil {
			return nil, fmt.Errorf("crear línea de pedido: %w", err)
		}
	}

	if totals.PointsEarned > 0 {
		if _, err := userRepo.AddPoints(ctx, userID, totals.PointsEarned); err != nil {
			return nil, fmt.Errorf("acreditar puntos: %w", err)
		}
		if err := pointsRepo.Append(ctx, &entity.PointsTransaction{
			ID:          uuid.New().String(),
			UserID:      userID,
			Type:        entity.PointsTypeEarned,
			Points:      totals.PointsEarned,
			Source:      entity.PointsSourceOrder,
			Description: fmt.Sprintf("Pedido #%s", shortID(order.ID)),
			OrderID:     order.ID,
			CreatedAt:   now,
		}); err != nil {
			return nil, fmt.Errorf("registrar puntos del pedido: %w", err)
		}
	}

	return &dto.PlaceOrderResponse{
		OrderID:               order.ID,
		PointsEarned:          totals.PointsEarned,
		Subtotal:              totals.Subtotal,
		DeliveryFee:           totals.DeliveryFee,
		Total:                 totals.Total,
		EstimatedDeliveryTime: order.EstimatedDeliveryTime,
	}, nil
}

func validatePlaceOrder(in dto.PlaceOrderRequest) error {
	if len(in.Items) == 0 {
		return domain.ErrEmptyCart
	}
	for _, it := range in.Items {
		if it.MenuItemID == "" || it.Quantity < 1 || it.Quantity > domainordering.MaxLineQuantity || it.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: línea de pedido inválida", domain.ErrInvalidInput)
		}
		if !domainordering.HasMoneyScale(it.UnitPrice) {
			return fmt.Errorf("%w: precio unitario con más de %d decimales", domain.ErrInvalidInput, domainordering.MoneyScale)
		}
	}
	if !entity.IsValidDeliveryMode(in.DeliveryMode) {
		return fmt.Errorf("%w: modo de entrega %q", domain.ErrInvalidInput, in.DeliveryMode)
	}
	if !entity.IsValidPaymentMethod(in.PaymentMethod) {
		return fmt.Errorf("%w: medio de pago %q", domain.ErrInvalidInput, in.PaymentMethod)
	}
	if in.DeliveryMode != entity.DeliveryModePickup && strings.TrimSpace(in.DeliveryAddress) == "" {
		return fmt.Errorf("%w: dirección de entrega requerida", domain.ErrInvalidInput)
	}
	return nil
}

// shortID primeros 8 caracteres del ID, como se muestra al cliente.
func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}
