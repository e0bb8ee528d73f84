package ordering

import (
	"context"

	"github.com/jhoicas/foodorder-api/internal/application/dto"
	"github.com/jhoicas/foodorder-api/internal/domain"
	"github.com/jhoicas/foodorder-api/internal/domain/entity"
	domainordering "github.com/jhoicas/foodorder-api/internal/domain/ordering"
	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

// ListOrders pedidos del usuario, más recientes primero. Solo lectura.
func (uc *OrderUseCase) ListOrders(ctx context.Context, userID string) ([]dto.OrderResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	orders, err := uc.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderResponse(o))
	}
	return out, nil
}

// GetOrder pedido con sus líneas, para el seguimiento.
func (uc *OrderUseCase) GetOrder(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// UpdateStatus avanza el pedido un paso o lo cancela antes de la entrega.
// Cancelar no revierte los puntos ya acreditados.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, orderID, status string) (*dto.OrderResponse, error) {
	if !domainordering.IsValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	err := uc.txRunner.RunOrder(ctx, func(
		_ repository.UserRepository,
		orderRepo repository.OrderRepository,
		_ repository.PointsTransactionRepository,
		_ repository.IdempotencyRepository,
	) error {
		o, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrOrderNotFound
		}
		if !domainordering.CanTransition(o.Status, status) {
			return domain.ErrInvalidTransition
		}
		return orderRepo.UpdateStatus(ctx, orderID, status, uc.now())
	})
	if err != nil {
		return nil, err
	}
	return uc.GetOrder(ctx, orderID)
}

// ToOrderResponse convierte la entidad a DTO.
func ToOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		custom := make([]dto.CustomizationSnapshotDTO, 0, len(it.Customizations))
		for _, c := range it.Customizations {
			custom = append(custom, dto.CustomizationSnapshotDTO{ID: c.ID, Name: c.Name, Price: c.Price})
		}
		items = append(items, dto.OrderItemResponse{
			ID:             it.ID,
			MenuItemID:     it.MenuItemID,
			MenuItemName:   it.MenuItemName,
			MenuItemImage:  it.MenuItemImage,
			CategoryName:   it.CategoryName,
			VariantID:      it.VariantID,
			VariantName:    it.VariantName,
			Customizations: custom,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			TotalPrice:     it.TotalPrice,
		})
	}
	return dto.OrderResponse{
		ID:                    o.ID,
		UserID:                o.UserID,
		Status:                o.Status,
		NextStatus:            domainordering.NextStatus(o.Status),
		DeliveryMode:          o.DeliveryMode,
		PaymentMethod:         o.PaymentMethod,
		Subtotal:              o.Subtotal,
		DeliveryFee:           o.DeliveryFee,
		Total:                 o.Total,
		DeliveryAddress:       o.DeliveryAddress,
		CustomerNotes:         o.CustomerNotes,
		EstimatedDeliveryTime: o.EstimatedDeliveryTime,
		Items:                 items,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
}
