package cart

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/foodorder-api/internal/application/dto"
	"github.com/jhoicas/foodorder-api/internal/domain"
	"github.com/jhoicas/foodorder-api/internal/domain/entity"
	domainordering "github.com/jhoicas/foodorder-api/internal/domain/ordering"
	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

// MaxLineQuantity tope de unidades por línea.
const MaxLineQuantity = domainordering.MaxLineQuantity

// CartUseCase carrito de una sesión. El precio de cada línea se fija al agregarla.
type CartUseCase struct {
	cartRepo repository.CartRepository
	menuRepo repository.MenuRepository
	placer   OrderPlacer
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(cartRepo repository.CartRepository, menuRepo repository.MenuRepository, placer OrderPlacer) *CartUseCase {
	return &CartUseCase{cartRepo: cartRepo, menuRepo: menuRepo, placer: placer}
}

// Get devuelve el carrito de la sesión (vacío si no existe).
func (uc *CartUseCase) Get(ctx context.Context, sessionID string) (*dto.CartResponse, error) {
	c, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return ToCartResponse(c), nil
}

// AddLine agrega un plato con variante y personalizaciones. Sin variante se usa la variante por defecto.
// Precio unitario = precio base + delta de la variante + Σ deltas de personalizaciones.
// Una línea idéntica (mismo plato, variante y personalizaciones) acumula la cantidad.
func (uc *CartUseCase) AddLine(ctx context.Context, sessionID string, in dto.AddCartLineRequest) (*dto.CartResponse, error) {
	if in.Quantity < 1 || in.Quantity > MaxLineQuantity {
		return nil, fmt.Errorf("%w: cantidad fuera de rango", domain.ErrInvalidInput)
	}
	c, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	item, err := uc.menuRepo.GetItem(ctx, in.MenuItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrMenuItemNotFound
	}
	if !item.InStock {
		return nil, fmt.Errorf("%w: %s no está disponible", domain.ErrInvalidInput, item.Name)
	}

	line, err := priceLine(item, in.VariantID, in.CustomizationIDs)
	if err != nil {
		return nil, err
	}
	line.Quantity = in.Quantity

	merged := false
	for i := range c.Lines {
		if sameSelection(c.Lines[i], line) {
			c.Lines[i].Quantity = min(c.Lines[i].Quantity+in.Quantity, MaxLineQuantity)
			merged = true
			break
		}
	}
	if !merged {
		line.ID = uuid.New().String()
		c.Lines = append(c.Lines, line)
	}
	return uc.save(ctx, c)
}

// UpdateQuantity cambia la cantidad de una línea; 0 la elimina.
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity int) (*dto.CartResponse, error) {
	if quantity < 0 || quantity > MaxLineQuantity {
		return nil, fmt.Errorf("%w: cantidad fuera de rango", domain.ErrInvalidInput)
	}
	c, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(c.Lines, func(l entity.CartLine) bool { return l.ID == lineID })
	if idx < 0 {
		return nil, domain.ErrCartLineNotFound
	}
	if quantity == 0 {
		c.Lines = slices.Delete(c.Lines, idx, idx+1)
	} else {
		c.Lines[idx].Quantity = quantity
	}
	return uc.save(ctx, c)
}

// RemoveLine elimina una línea del carrito.
func (uc *CartUseCase) RemoveLine(ctx context.Context, sessionID, lineID string) (*dto.CartResponse, error) {
	return uc.UpdateQuantity(ctx, sessionID, lineID, 0)
}

// Clear vacía el carrito de la sesión.
func (uc *CartUseCase) Clear(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return domain.ErrInvalidInput
	}
	return uc.cartRepo.Delete(ctx, sessionID)
}

// Checkout crea el pedido con las líneas guardadas y vacía el carrito.
// El pedido ya está confirmado al vaciar: un fallo al vaciar se registra y no se devuelve.
func (uc *CartUseCase) Checkout(ctx context.Context, sessionID string, in dto.CheckoutRequest, idempotencyKey string) (*dto.PlaceOrderResponse, error) {
	c, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	req := dto.PlaceOrderRequest{
		UserID:          in.UserID,
		Items:           make([]dto.OrderLineRequest, 0, len(c.Lines)),
		DeliveryMode:    in.DeliveryMode,
		PaymentMethod:   in.PaymentMethod,
		DeliveryAddress: in.DeliveryAddress,
		CustomerNotes:   in.CustomerNotes,
	}
	for _, l := range c.Lines {
		custom := make([]dto.CustomizationSnapshotDTO, 0, len(l.Customizations))
		for _, cs := range l.Customizations {
			custom = append(custom, dto.CustomizationSnapshotDTO{ID: cs.ID, Name: cs.Name, Price: cs.Price})
		}
		req.Items = append(req.Items, dto.OrderLineRequest{
			MenuItemID:     l.MenuItemID,
			MenuItemName:   l.MenuItemName,
			VariantID:      l.VariantID,
			VariantName:    l.VariantName,
			Customizations: custom,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
		})
	}

	res, err := uc.placer.PlaceOrder(ctx, req, idempotencyKey)
	if err != nil {
		return nil, err
	}
	if err := uc.cartRepo.Delete(ctx, sessionID); err != nil {
		log.Warn().Err(err).
			Str("session", sessionID).
			Str("order_id", res.OrderID).
			Msg("pedido creado pero no se pudo vaciar el carrito")
	}
	return res, nil
}

func (uc *CartUseCase) load(ctx context.Context, sessionID string) (*entity.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.cartRepo.Get(ctx, sessionID)
}

func (uc *CartUseCase) save(ctx context.Context, c *entity.Cart) (*dto.CartResponse, error) {
	c.UpdatedAt = time.Now()
	if err := uc.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return ToCartResponse(c), nil
}

// priceLine resuelve variante y personalizaciones activas y calcula el precio unitario.
func priceLine(item *entity.MenuItem, variantID string, customizationIDs []string) (entity.CartLine, error) {
	var (
		variant entity.MenuVariant
		ok      bool
	)
	if variantID == "" {
		variant, ok = item.DefaultVariant()
	} else {
		variant, ok = item.FindVariant(variantID)
	}
	line := entity.CartLine{
		MenuItemID:     item.ID,
		MenuItemName:   item.Name,
		Customizations: make([]entity.CustomizationSnapshot, 0, len(customizationIDs)),
		UnitPrice:      item.BasePrice,
	}
	if ok {
		line.VariantID = variant.ID
		line.VariantName = variant.Name
		line.UnitPrice = line.UnitPrice.Add(variant.Price)
	} else if variantID != "" || len(item.Variants) > 0 {
		return entity.CartLine{}, fmt.Errorf("%w: variante desconocida", domain.ErrInvalidInput)
	}

	seen := make(map[string]bool, len(customizationIDs))
	for _, id := range customizationIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		cust, ok := item.FindCustomization(id)
		if !ok {
			return entity.CartLine{}, fmt.Errorf("%w: personalización desconocida", domain.ErrInvalidInput)
		}
		price := cust.Price
		if cust.IsFree {
			price = decimal.Zero
		}
		line.Customizations = append(line.Customizations, entity.CustomizationSnapshot{ID: cust.ID, Name: cust.Name, Price: price})
		line.UnitPrice = line.UnitPrice.Add(price)
	}
	return line, nil
}

func sameSelection(a, b entity.CartLine) bool {
	if a.MenuItemID != b.MenuItemID || a.VariantID != b.VariantID || len(a.Customizations) != len(b.Customizations) {
		return false
	}
	ids := func(l entity.CartLine) []string {
		out := make([]string, 0, len(l.Customizations))
		for _, c := range l.Customizations {
			out = append(out, c.ID)
		}
		slices.Sort(out)
		return out
	}
	return slices.Equal(ids(a), ids(b))
}

// ToCartResponse convierte el carrito a DTO.
func ToCartResponse(c *entity.Cart) *dto.CartResponse {
	resp := &dto.CartResponse{
		SessionID: c.SessionID,
		Lines:     make([]dto.CartLineResponse, 0, len(c.Lines)),
		Subtotal:  c.Subtotal(),
		UpdatedAt: c.UpdatedAt,
	}
	for _, l := range c.Lines {
		custom := make([]dto.CustomizationSnapshotDTO, 0, len(l.Customizations))
		for _, cs := range l.Customizations {
			custom = append(custom, dto.CustomizationSnapshotDTO{ID: cs.ID, Name: cs.Name, Price: cs.Price})
		}
		resp.Lines = append(resp.Lines, dto.CartLineResponse{
			ID:             l.ID,
			MenuItemID:     l.MenuItemID,
			MenuItemName:   l.MenuItemName,
			VariantID:      l.VariantID,
			VariantName:    l.VariantName,
			Customizations: custom,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			LineTotal:      l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))),
		})
		resp.ItemCount += l.Quantity
	}
	return resp
}
