package ordering_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foodorder-api/internal/application/apptest"
	"github.com/jhoicas/foodorder-api/internal/application/dto"
	"github.com/jhoicas/foodorder-api/internal/application/ordering"
	"github.com/jhoicas/foodorder-api/internal/domain"
	"github.com/jhoicas/foodorder-api/internal/domain/entity"
)

var fixedNow = time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

func newOrderUseCase() (*ordering.OrderUseCase, *apptest.Store) {
	store := apptest.NewStore()
	uc := ordering.NewOrderUseCase(store, store.Orders(), store.Users())
	uc.SetClock(func() time.Time { return fixedNow })
	return uc, store
}

func line(price int64, qty int) dto.OrderLineRequest {
	return dto.OrderLineRequest{
		MenuItemID:   "item-1",
		MenuItemName: "Thieboudienne",
		VariantID:    "var-1",
		VariantName:  "Normal",
		Quantity:     qty,
		UnitPrice:    decimal.NewFromInt(price),
	}
}

func deliveryRequest(userID string, items ...dto.OrderLineRequest) dto.PlaceOrderRequest {
	return dto.PlaceOrderRequest{
		UserID:          userID,
		Items:           items,
		DeliveryMode:    entity.DeliveryModeDelivery,
		PaymentMethod:   entity.PaymentWave,
		DeliveryAddress: "Plateau, Dakar",
	}
}

// 2500 de platos + 500 de envío → 3 puntos y un único asiento de +3.
func TestPlaceOrder_AcreditaPuntosSobreElTotal(t *testing.T) {
	uc, store := newOrderUseCase()
	user := store.SeedUser("Awa", "771234567", 0)

	res, err := uc.PlaceOrder(context.Background(), deliveryRequest(user.ID, line(1000, 2), line(500, 1)), "")
	require.NoError(t, err)

	assert.True(t, res.Subtotal.Equal(decimal.NewFromInt(2500)))
	assert.True(t, res.DeliveryFee.Equal(decimal.NewFromInt(500)))
	assert.True(t, res.Total.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, 3, res.PointsEarned)
	assert.Equal(t, fixedNow.Add(30*time.Minute), res.EstimatedDeliveryTime)
	assert.False(t, res.Replayed)

	ledger := store.Ledger(user.ID)
	require.Len(t, ledger, 1)
	assert.Equal(t, entity.PointsTypeEarned, ledger[0].Type)
	assert.Equal(t, entity.PointsSourceOrder, ledger[0].Source)
	assert.Equal(t, 3, ledger[0].Points)
	assert.Equal(t, res.OrderID, ledger[0].OrderID)
	assert.Equal(t, 3, store.Balance(user.ID))

	order, err := uc.GetOrder(context.Background(), res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, entity.OrderStatusConfirmed, order.NextStatus)
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].TotalPrice.Equal(decimal.NewFromInt(2000)))
}

func TestPlaceOrder_RetiroSinPuntosNoEscribeAsiento(t *testing.T) {
	uc, store := newOrderUseCase()
	user := store.SeedUser("Awa", "771234567", 0)

	req := deliveryRequest(user.ID, line(900, 1))
	req.DeliveryMode = entity.DeliveryModePickup
	req.DeliveryAddress = ""

	res, err := uc.PlaceOrder(context.Background(), req, "")
	require.NoError(t, err)
	assert.Equal(t, 0, res.PointsEarned)
	assert.True(t, res.DeliveryFee.IsZero())
	assert.Empty(t, store.Ledger(user.ID))
	assert.Equal(t, 1, store.OrderCount())
}

func TestPlaceOrder_CarritoVacio(t *testing.T) {
	uc, store := newOrderUseCase()
	user := store.SeedUser("Awa", "771234567", 0)

	_, err := uc.PlaceOrder(context.Background(), deliveryRequest(user.ID), "")
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, store.OrderCount())
	assert.Empty(t, store.Ledger(user.ID))
}

func TestPlaceOrder_EntradasInvalidas(t *testing.T) {
	uc, store := newOrderUseCase()
	user := store.SeedUser("Awa", "771234567", 0)

	cases := map[string]func(r *dto.PlaceOrderRequest){
		"cantidad cero":        func(r *dto.PlaceOrderRequest) { r.Items[0].Quantity = 0 },
		"precio negativo":      func(r *dto.PlaceOrderRequest) { r.Items[0].UnitPrice = decimal.NewFromInt(-1) },
		"modo desconocido":     func(r *dto.PlaceOrderRequest) { r.DeliveryMode = "drone" },
		"pago desconocido":     func(r *dto.PlaceOrderRequest) { r.PaymentMethod = "cheque" },
		"envío sin dirección":  func(r *dto.PlaceOrderRequest) { r.DeliveryAddress = "  " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := deliveryRequest(user.ID, line(1000, 1))
			mutate(&req)
			_, err := uc.PlaceOrder(context.Background(), req, "")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, store.OrderCount())
}

func TestPlaceOrder_UsuarioInexistente(t *testing.T) {
	uc, store := newOrderUseCase()

	_, err := uc.PlaceOrder(context.Background(), deliveryRequest("fantasma", line(1000, 1)), "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Equal(t, 0, store.OrderCount())
}

// Una falla a mitad de camino no deja pedido, líneas ni puntos.
func TestPlaceOrder_FallaIntermediaRevierteTodo(t *testing.T) {
	for _, op := range []string{apptest.FailOrderItem, apptest.FailPointsAppend} {
		t.Run(op, func(t *testing.T) {
			uc, store := newOrderUseCase()
			user := store.SeedUser("Awa", "771234567", 10)
			store.FailOn(op)

			_, err := uc.PlaceOrder(context.Background(), deliveryRequest(user.ID, line(5000, 1)), "")
			assert.ErrorIs(t, err, apptest.ErrInjected)
			assert.Equal(t, 0, store.OrderCount())
			assert.Equal(t, 10, store.Balance(user.ID))
			assert.Len(t, store.Ledger(user.ID), 1)
		})
	}
}

func TestPlaceOrder_ClaveRepetidaDevuelveElPrimerResultado(t *testing.T) {
	uc, store := newOrderUseCase()
	user := store.SeedUser("Awa", "771234567", 0)
	req := deliveryRequest(user.ID, line(1000, 2))

	first, err := uc.PlaceOrder(context.Background(), req, "checkout-1")
	require.NoError(t, err)
	second, err := uc.PlaceOrder(context.Background(), req, "checkout-1")
	require.NoError(t, err)

	assert.True(t, second.Replayed)
	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Equal(t, first.PointsEarned, second.PointsEarned)
	assert.True(t, first.Total.Equal(second.Total))
	assert.Equal(t, 1, store.OrderCount())
	assert.Equal(t, 2, store.Balance(user.ID))
	assert.Len(t, store.Ledger(user.ID), 1)

	// Otra clave crea otro pedido.
	_, err = uc.PlaceOrder(context.Background(), req, "checkout-2")
	require.NoError(t, err)
	assert.Equal(t, 2, store.OrderCount())
}

func TestPlaceOrder_ClaveLiberadaSiLaOperacionFalla(t *testing.T) {
	uc, store := newOrderUseCase()
	user := store.SeedUser("Awa", "771234567", 0)
	req := deliveryRequest(user.ID, line(1000, 2))

	store.FailOn(apptest.FailOrderCreate)
	_, err := uc.PlaceOrder(context.Background(), req, "checkout-1")
	require.Error(t, err)
	store.ResetFailures()

	res, err := uc.PlaceOrder(context.Background(), req, "checkout-1")
	require.NoError(t, err)
	assert.False(t, res.Replayed)
	assert.Equal(t, 1, store.OrderCount())
}

func TestListOrders_MasRecientesPrimero(t *testing.T) {
	uc, store := newOrderUseCase()
	user := store.SeedUser("Awa", "771234567", 0)

	first, err := uc.PlaceOrder(context.Background(), deliveryRequest(user.ID, line(1000, 1)), "")
	require.NoError(t, err)
	uc.SetClock(func() time.Time { return fixedNow.Add(time.Hour) })
	second, err := uc.PlaceOrder(context.Background(), deliveryRequest(user.ID, line(2000, 1)), "")
	require.NoError(t, err)

	list, err := uc.ListOrders(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.OrderID, list[0].ID)
	assert.Equal(t, first.OrderID, list[1].ID)

	_, err = uc.ListOrders(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// NUMERIC(12,2) redondearía 999.999 a 1000 y el pedido guardado no cumpliría floor(total/1000).
func TestPlaceOrder_PrecioConMasDeDosDecimalesEsInvalido(t *testing.T) {
	uc, store := newOrderUseCase()
	user := store.SeedUser("Awa", "771234567", 0)
	l := line(0, 1)
	l.UnitPrice = decimal.RequireFromString("999.999")
	req := deliveryRequest(user.ID, l)
	req.DeliveryMode = entity.DeliveryModePickup

	_, err := uc.PlaceOrder(context.Background(), req, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, store.OrderCount())
	assert.Equal(t, 0, store.Balance(user.ID))
}

func TestPlaceOrder_PrecioConDosDecimalesSeAcepta(t *testing.T) {
	uc, store := newOrderUseCase()
	user := store.SeedUser("Awa", "771234567", 0)
	l := line(0, 2)
	l.UnitPrice = decimal.RequireFromString("999.50")
	req := deliveryRequest(user.ID, l)
	req.DeliveryMode = entity.DeliveryModePickup

	res, err := uc.PlaceOrder(context.Background(), req, "")
	require.NoError(t, err)
	assert.True(t, res.Total.Equal(decimal.NewFromInt(1999)))
	assert.Equal(t, 1, res.PointsEarned)
}

func TestPlaceOrder_CantidadSobreElTopeEsInvalida(t *testing.T) {
	uc, store := newOrderUseCase()
	user := store.SeedUser("Awa", "771234567", 0)

	_, err := uc.PlaceOrder(context.Background(), deliveryRequest(user.ID, line(500, 100)), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, store.OrderCount())
}

// Platos sin variantes: la línea llega sin VariantID, igual que desde el carrito.
func TestPlaceOrder_LineaSinVariante(t *testing.T) {
	uc, store := newOrderUseCase()
	user := store.SeedUser("Awa", "771234567", 0)
	l := line(600, 1)
	l.VariantID, l.VariantName = "", ""

	res, err := uc.PlaceOrder(context.Background(), deliveryRequest(user.ID, l), "")
	require.NoError(t, err)

	order, err := uc.GetOrder(context.Background(), res.OrderID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Empty(t, order.Items[0].VariantID)
}
