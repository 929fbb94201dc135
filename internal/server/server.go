package server

import (
	"context"
	"time"

	"toko/internal/config"
	"toko/internal/handlers"
	"toko/internal/middleware"
	"toko/internal/repositories"
	"toko/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers into a Fiber app.
// publisher may be nil, in which case order events are not published.
func New(cfg config.Config, db *gorm.DB, publisher services.EventPublisher) (*fiber.App, *services.AuthService) {
	store := repositories.NewGORMStore(db)
	userRepo := repositories.NewGORMUserRepository(db)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	productService := services.NewProductService(store.Products())
	cartService := services.NewCartService(store)
	addressService := services.NewAddressService(store.Addresses())
	orderService := services.NewOrderService(store, publisher, cfg.OrderTimeout)
	userService := services.NewUserService(userRepo)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		status, code := "healthy", fiber.StatusOK
		if err := pingDB(c.UserContext(), db); err != nil {
			status, code = "unhealthy", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":    status,
			"time":      time.Now().Format(time.RFC3339),
			"publisher": publisher != nil,
		})
	})

	apiV1 := app.Group("/api/v1")
	authRequired := middleware.AuthRequired(authService)

	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1, authRequired)

	protected := apiV1.Group("", authRequired)
	handlers.NewCartHandler(cartService).RegisterRoutes(protected)
	handlers.NewAddressHandler(addressService).RegisterRoutes(protected)
	handlers.NewOrderHandler(orderService).RegisterRoutes(protected)
	handlers.NewUserHandler(userService).RegisterRoutes(protected)

	return app, authService
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
