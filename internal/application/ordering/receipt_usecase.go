package ordering

import (
	"context"
	"fmt"

	"github.com/jhoicas/foodorder-api/internal/domain"
	domainordering "github.com/jhoicas/foodorder-api/internal/domain/ordering"
	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

// ReceiptUseCase genera el recibo PDF de un pedido.
type ReceiptUseCase struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(orderRepo repository.OrderRepository, userRepo repository.UserRepository, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{orderRepo: orderRepo, userRepo: userRepo, generator: generator}
}

// Receipt devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *ReceiptUseCase) Receipt(ctx context.Context, orderID string) (pdfBytes []byte, filename string, err error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener pedido: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrOrderNotFound
	}
	customer, err := uc.userRepo.GetByID(ctx, order.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", domain.ErrUserNotFound
	}

	pdfBytes, err = uc.generator.GenerateReceipt(ctx, order, customer, domainordering.PointsFor(order.Total))
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("recibo_%s.pdf", shortID(order.ID)), nil
}
