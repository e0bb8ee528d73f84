package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/foodorder-api/internal/application/cart"
	"github.com/jhoicas/foodorder-api/internal/application/catalog"
	"github.com/jhoicas/foodorder-api/internal/application/directory"
	"github.com/jhoicas/foodorder-api/internal/application/loyalty"
	"github.com/jhoicas/foodorder-api/internal/application/ordering"
	infrapdf "github.com/jhoicas/foodorder-api/internal/infrastructure/pdf"
	"github.com/jhoicas/foodorder-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/foodorder-api/internal/interfaces/http"
	"github.com/jhoicas/foodorder-api/pkg/config"
	"github.com/jhoicas/foodorder-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	menuRepo := postgres.NewMenuRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	pointsRepo := postgres.NewPointsRepository(pool)
	rewardRepo := postgres.NewRewardRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	directoryUC := directory.NewDirectoryUseCase(txRunner, userRepo)
	orderUC := ordering.NewOrderUseCase(txRunner, orderRepo, userRepo)
	loyaltyUC := loyalty.NewLoyaltyUseCase(txRunner, userRepo, rewardRepo, pointsRepo)
	catalogUC := catalog.NewCatalogUseCase(menuRepo)
	cartUC := cart.NewCartUseCase(cartRepo, menuRepo, orderUC)

	// PDF: recibo del pedido con QR de seguimiento opcional
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.Receipt.Brand, cfg.Receipt.TrackingURL)
	receiptUC := ordering.NewReceiptUseCase(orderRepo, userRepo, receiptGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Food Order API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DirectoryUC: directoryUC,
		OrderUC:     orderUC,
		ReceiptUC:   receiptUC,
		LoyaltyUC:   loyaltyUC,
		CatalogUC:   catalogUC,
		CartUC:      cartUC,
		Logger:      log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
