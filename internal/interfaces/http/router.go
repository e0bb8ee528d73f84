package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/foodorder-api/internal/application/cart"
	"github.com/jhoicas/foodorder-api/internal/application/catalog"
	"github.com/jhoicas/foodorder-api/internal/application/directory"
	"github.com/jhoicas/foodorder-api/internal/application/loyalty"
	"github.com/jhoicas/foodorder-api/internal/application/ordering"
	"github.com/jhoicas/foodorder-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DirectoryUC *directory.DirectoryUseCase
	OrderUC     *ordering.OrderUseCase
	ReceiptUC   *ordering.ReceiptUseCase
	LoyaltyUC   *loyalty.LoyaltyUseCase
	CatalogUC   *catalog.CatalogUseCase
	CartUC      *cart.CartUseCase
	Logger      *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	eh := errorHandler{log: log.Component("http")}

	api := app.Group("/api", RequestLogger(log.Component("http")))

	// Users
	users := api.Group("/users")
	userHandler := NewUserHandler(deps.DirectoryUC, deps.OrderUC, deps.LoyaltyUC, eh)
	users.Post("/identify", userHandler.Identify)
	users.Post("/register", userHandler.Register)
	users.Get("/:id", userHandler.GetByID)
	users.Get("/:id/orders", userHandler.Orders)
	users.Get("/:id/points", userHandler.Points)
	users.Get("/:id/loyalty", userHandler.Loyalty)

	// Menu (solo lectura)
	menu := api.Group("/menu")
	menuHandler := NewMenuHandler(deps.CatalogUC, eh)
	menu.Get("/categories", menuHandler.Categories)
	menu.Get("/items", menuHandler.Items)
	menu.Get("/items/:id", menuHandler.Item)
	menu.Get("/search", menuHandler.Search)

	// Orders
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReceiptUC, eh)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Get("/:id/receipt", orderHandler.Receipt)

	// Loyalty
	loy := api.Group("/loyalty")
	loyaltyHandler := NewLoyaltyHandler(deps.LoyaltyUC, eh)
	loy.Get("/rewards", loyaltyHandler.Rewards)
	loy.Post("/redeem", loyaltyHandler.Redeem)

	// Cart por sesión
	carts := api.Group("/cart")
	cartHandler := NewCartHandler(deps.CartUC, eh)
	carts.Get("/:session", cartHandler.Get)
	carts.Delete("/:session", cartHandler.Clear)
	carts.Post("/:session/lines", cartHandler.AddLine)
	carts.Patch("/:session/lines/:line", cartHandler.UpdateLine)
	carts.Delete("/:session/lines/:line", cartHandler.RemoveLine)
	carts.Post("/:session/checkout", cartHandler.Checkout)
}
