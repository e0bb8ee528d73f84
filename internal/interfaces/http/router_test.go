package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foodorder-api/internal/application/apptest"
	"github.com/jhoicas/foodorder-api/internal/application/cart"
	"github.com/jhoicas/foodorder-api/internal/application/catalog"
	"github.com/jhoicas/foodorder-api/internal/application/directory"
	"github.com/jhoicas/foodorder-api/internal/application/loyalty"
	"github.com/jhoicas/foodorder-api/internal/application/ordering"
	"github.com/jhoicas/foodorder-api/internal/domain/entity"
	infrapdf "github.com/jhoicas/foodorder-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/foodorder-api/internal/interfaces/http"
	"github.com/jhoicas/foodorder-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

type testAPI struct {
	app   *fiber.App
	store *apptest.Store
	item  *entity.MenuItem
}

// buildTestApp arma la API completa sobre el almacén en memoria.
func buildTestApp() testAPI {
	store := apptest.NewStore()
	cat := store.SeedCategory("Plats", 1, true)
	item := store.SeedItem(entity.MenuItem{
		Name: "Thieboudienne", CategoryID: cat.ID, BasePrice: apptest.Price(3500), InStock: true, IsActive: true,
		Variants: []entity.MenuVariant{{ID: "v-normal", Name: "Normal", IsDefault: true, IsActive: true}},
	})

	orderUC := ordering.NewOrderUseCase(store, store.Orders(), store.Users())
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		DirectoryUC: directory.NewDirectoryUseCase(store, store.Users()),
		OrderUC:     orderUC,
		ReceiptUC:   ordering.NewReceiptUseCase(store.Orders(), store.Users(), infrapdf.NewMarotoReceiptGenerator("Teranga Food", "")),
		LoyaltyUC:   loyalty.NewLoyaltyUseCase(store, store.Users(), store.Rewards(), store.Points()),
		CatalogUC:   catalog.NewCatalogUseCase(store.Menu()),
		CartUC:      cart.NewCartUseCase(store.Carts(), store.Menu(), orderUC),
		Logger:      logger.Nop(),
	})
	return testAPI{app: app, store: store, item: item}
}

func (api testAPI) do(t *testing.T, method, path string, body any, headers ...string) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	if resp.Header.Get("Content-Type") == fiber.MIMEApplicationJSON {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Users
// ──────────────────────────────────────────────────────────────────────────────

func TestIdentify_CreaClienteConBono(t *testing.T) {
	api := buildTestApp()

	resp, env := api.do(t, http.MethodPost, "/api/users/identify", map[string]string{"phone": "77 123 45 67", "name": "Awa"})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.True(t, env.Success)
	assert.Empty(t, env.Error)

	got := decode[struct {
		User struct {
			ID     string `json:"id"`
			Phone  string `json:"phone"`
			Points int    `json:"points"`
			Tier   string `json:"tier"`
		} `json:"user"`
		Created bool `json:"created"`
	}](t, env.Data)
	assert.True(t, got.Created)
	assert.Equal(t, "771234567", got.User.Phone)
	assert.Equal(t, 50, got.User.Points)

	// Segunda identificación devuelve el mismo cliente con 200.
	resp, env = api.do(t, http.MethodPost, "/api/users/identify", map[string]string{"phone": "771234567"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	again := decode[struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Created bool `json:"created"`
	}](t, env.Data)
	assert.False(t, again.Created)
	assert.Equal(t, got.User.ID, again.User.ID)
	assert.Equal(t, 1, api.store.UserCount())
}

func TestIdentify_SinTelefonoEs400SinData(t *testing.T) {
	api := buildTestApp()

	resp, env := api.do(t, http.MethodPost, "/api/users/identify", map[string]string{"name": "Awa"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION", env.Code)
	assert.NotEmpty(t, env.Error)
	assert.Empty(t, env.Data)
}

func TestRegister_TelefonoDuplicadoEs409(t *testing.T) {
	api := buildTestApp()
	api.store.SeedUser("Awa", "771234567", 0)

	resp, env := api.do(t, http.MethodPost, "/api/users/register", map[string]string{"name": "Fatou", "phone": "771234567"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", env.Code)
}

func TestGetUser_InexistenteEs404(t *testing.T) {
	api := buildTestApp()

	resp, env := api.do(t, http.MethodGet, "/api/users/00000000-0000-0000-0000-000000000099", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Menu
// ──────────────────────────────────────────────────────────────────────────────

func TestMenu_ItemsYBusqueda(t *testing.T) {
	api := buildTestApp()

	resp, env := api.do(t, http.MethodGet, "/api/menu/items?category=all", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	items := decode[[]struct {
		ID string `json:"id"`
	}](t, env.Data)
	require.Len(t, items, 1)
	assert.Equal(t, api.item.ID, items[0].ID)

	_, env = api.do(t, http.MethodGet, "/api/menu/search?q=thieb", nil)
	assert.Len(t, decode[[]json.RawMessage](t, env.Data), 1)

	resp, _ = api.do(t, http.MethodGet, "/api/menu/items/no-existe", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cart → checkout → order
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_IdempotenteConCabecera(t *testing.T) {
	api := buildTestApp()
	user := api.store.SeedUser("Awa", "771234567", 0)

	resp, _ := api.do(t, http.MethodPost, "/api/cart/s1/lines", map[string]any{"menu_item_id": api.item.ID, "quantity": 2})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := map[string]string{
		"user_id":          user.ID,
		"delivery_mode":    "delivery",
		"payment_method":   "wave",
		"delivery_address": "Sacré-Coeur 3, Dakar",
	}
	resp, env := api.do(t, http.MethodPost, "/api/cart/s1/checkout", body, apphttp.IdempotencyHeader, "chk-1")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Error)
	first := decode[struct {
		OrderID      string `json:"order_id"`
		PointsEarned int    `json:"points_earned"`
		Total        string `json:"total"`
	}](t, env.Data)
	assert.Equal(t, 7, first.PointsEarned) // (7000 + 500) / 1000
	assert.Equal(t, "7500", first.Total)

	resp, env = api.do(t, http.MethodPost, "/api/cart/s1/checkout", body, apphttp.IdempotencyHeader, "chk-1")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Error)
	second := decode[struct {
		OrderID  string `json:"order_id"`
		Replayed bool   `json:"replayed"`
	}](t, env.Data)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Equal(t, 1, api.store.OrderCount())
	assert.Equal(t, 7, api.store.Balance(user.ID))

	_, env = api.do(t, http.MethodGet, "/api/users/"+user.ID+"/orders", nil)
	assert.Len(t, decode[[]json.RawMessage](t, env.Data), 1)
}

func TestPlaceOrder_CarritoVacioEs400(t *testing.T) {
	api := buildTestApp()
	user := api.store.SeedUser("Awa", "771234567", 0)

	resp, env := api.do(t, http.MethodPost, "/api/orders", map[string]any{
		"user_id": user.ID, "items": []any{}, "delivery_mode": "pickup", "payment_method": "cash",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Zero(t, api.store.OrderCount())
}

func TestPlaceOrder_ErrorInternoNoExpone(t *testing.T) {
	api := buildTestApp()
	user := api.store.SeedUser("Awa", "771234567", 0)
	api.store.FailOn(apptest.FailOrderCreate)

	resp, env := api.do(t, http.MethodPost, "/api/orders", map[string]any{
		"user_id":        user.ID,
		"delivery_mode":  "pickup",
		"payment_method": "cash",
		"items": []map[string]any{{
			"menu_item_id": api.item.ID, "menu_item_name": "Thieboudienne",
			"variant_id": "v-normal", "variant_name": "Normal", "quantity": 1, "unit_price": "3500",
		}},
	})
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "operation failed", env.Error)
	assert.NotContains(t, env.Error, "apptest")
	assert.Zero(t, api.store.OrderCount())
	assert.Zero(t, api.store.Balance(user.ID))
}

func TestUpdateStatus_AvanceYTransicionInvalida(t *testing.T) {
	api := buildTestApp()
	user := api.store.SeedUser("Awa", "771234567", 0)
	_, _ = api.do(t, http.MethodPost, "/api/cart/s1/lines", map[string]any{"menu_item_id": api.item.ID, "quantity": 1})
	_, env := api.do(t, http.MethodPost, "/api/cart/s1/checkout", map[string]string{
		"user_id": user.ID, "delivery_mode": "pickup", "payment_method": "cash",
	})
	orderID := decode[struct {
		OrderID string `json:"order_id"`
	}](t, env.Data).OrderID
	require.NotEmpty(t, orderID)

	resp, env := api.do(t, http.MethodPatch, "/api/orders/"+orderID+"/status", map[string]string{"status": "delivered"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", env.Code)

	resp, env = api.do(t, http.MethodPatch, "/api/orders/"+orderID+"/status", map[string]string{"status": "confirmed"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Error)
	got := decode[struct {
		Status     string `json:"status"`
		NextStatus string `json:"next_status"`
	}](t, env.Data)
	assert.Equal(t, entity.OrderStatusConfirmed, got.Status)
	assert.Equal(t, entity.OrderStatusPreparing, got.NextStatus)

	resp, _ = api.do(t, http.MethodPatch, "/api/orders/"+orderID+"/status", map[string]string{"status": "shipped"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestReceipt_DevuelvePDF(t *testing.T) {
	api := buildTestApp()
	user := api.store.SeedUser("Awa", "771234567", 0)
	_, _ = api.do(t, http.MethodPost, "/api/cart/s1/lines", map[string]any{"menu_item_id": api.item.ID, "quantity": 1})
	_, env := api.do(t, http.MethodPost, "/api/cart/s1/checkout", map[string]string{
		"user_id": user.ID, "delivery_mode": "pickup", "payment_method": "orange_money",
	})
	orderID := decode[struct {
		OrderID string `json:"order_id"`
	}](t, env.Data).OrderID

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID+"/receipt", nil)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "recibo_")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Loyalty
// ──────────────────────────────────────────────────────────────────────────────

func TestRedeem_PuntosInsuficientesEs422(t *testing.T) {
	api := buildTestApp()
	user := api.store.SeedUser("Awa", "771234567", 100)
	reward := api.store.SeedReward("Boisson offerte", 150, true)

	resp, env := api.do(t, http.MethodPost, "/api/loyalty/redeem", map[string]string{"user_id": user.ID, "reward_id": reward.ID})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_POINTS", env.Code)
	assert.Equal(t, 100, api.store.Balance(user.ID))
}

func TestRedeem_DescuentaYHistorial(t *testing.T) {
	api := buildTestApp()
	user := api.store.SeedUser("Awa", "771234567", 300)
	reward := api.store.SeedReward("Boisson offerte", 150, true)

	resp, env := api.do(t, http.MethodPost, "/api/loyalty/redeem",
		map[string]string{"user_id": user.ID, "reward_id": reward.ID}, apphttp.IdempotencyHeader, "r-1")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Error)
	got := decode[struct {
		Balance int `json:"balance"`
	}](t, env.Data)
	assert.Equal(t, 150, got.Balance)

	_, env = api.do(t, http.MethodGet, "/api/users/"+user.ID+"/points", nil)
	history := decode[[]struct {
		Type   string `json:"type"`
		Points int    `json:"points"`
	}](t, env.Data)
	require.NotEmpty(t, history)
	assert.Equal(t, "redeemed", history[0].Type)
	assert.Equal(t, -150, history[0].Points)

	_, env = api.do(t, http.MethodGet, "/api/users/"+user.ID+"/loyalty", nil)
	summary := decode[struct {
		Points int `json:"points"`
	}](t, env.Data)
	assert.Equal(t, 150, summary.Points)
}

func TestCart_ClearVaciaElCarrito(t *testing.T) {
	api := buildTestApp()
	_, _ = api.do(t, http.MethodPost, "/api/cart/s1/lines", map[string]any{"menu_item_id": api.item.ID, "quantity": 1})

	resp, env := api.do(t, http.MethodDelete, "/api/cart/s1", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	_, env = api.do(t, http.MethodGet, "/api/cart/s1", nil)
	got := decode[struct {
		Lines []json.RawMessage `json:"lines"`
	}](t, env.Data)
	assert.Empty(t, got.Lines)
}

func directOrder(userID string, line map[string]any) map[string]any {
	return map[string]any{
		"user_id":        userID,
		"delivery_mode":  "pickup",
		"payment_method": "cash",
		"items":          []map[string]any{line},
	}
}

func TestPlaceOrder_CantidadSobreElTopeEs400(t *testing.T) {
	api := buildTestApp()
	user := api.store.SeedUser("Awa", "771234567", 0)

	resp, env := api.do(t, http.MethodPost, "/api/orders", directOrder(user.ID, map[string]any{
		"menu_item_id": api.item.ID, "variant_id": "v-normal", "quantity": 5000000000, "unit_price": "3500",
	}))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", env.Code)
	assert.Zero(t, api.store.OrderCount())
}

func TestPlaceOrder_SinVarianteSeAcepta(t *testing.T) {
	api := buildTestApp()
	user := api.store.SeedUser("Awa", "771234567", 0)

	resp, env := api.do(t, http.MethodPost, "/api/orders", directOrder(user.ID, map[string]any{
		"menu_item_id": api.item.ID, "menu_item_name": "Bissap", "quantity": 2, "unit_price": "500",
	}))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Error)
	assert.Equal(t, 1, api.store.OrderCount())
}

func TestPlaceOrder_PrecioConTresDecimalesEs400(t *testing.T) {
	api := buildTestApp()
	user := api.store.SeedUser("Awa", "771234567", 0)

	resp, _ := api.do(t, http.MethodPost, "/api/orders", directOrder(user.ID, map[string]any{
		"menu_item_id": api.item.ID, "variant_id": "v-normal", "quantity": 1, "unit_price": "999.999",
	}))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, api.store.OrderCount())
}
