package main

import (
	"context"
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"github.com/rs/zerolog"

	"beanmart/internal/config"
	"beanmart/internal/handlers"
	"beanmart/internal/middleware"
	"beanmart/internal/repositories"
	"beanmart/internal/services"
	"beanmart/pkg/database"
)

const version = "1.0.0"

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("configuration error")
	}

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		jwtSecret = random.String(32)
		logger.Warn().Msg("JWT_SECRET not set, using a generated secret; tokens will not survive restarts")
	}

	pool, err := database.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	storageSvc, err := services.NewStorageService(cfg.Storage, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	addressRepo := repositories.NewAddressRepo(pool)
	categoryRepo := repositories.NewCategoryRepo(pool)
	roastLevelRepo := repositories.NewRoastLevelRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	variantRepo := repositories.NewProductVariantRepo(pool)
	variantImageRepo := repositories.NewVariantImageRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)

	// Services
	authSvc := services.NewAuthService(jwtSecret)
	fetcher := services.NewRemoteFetcher()
	resolver := services.NewSourceResolver(fetcher)
	processor := services.NewImageProcessor()
	ingestSvc := services.NewIngestService(variantRepo, variantImageRepo, resolver, processor, storageSvc, logger)
	variantImageSvc := services.NewVariantImageService(variantImageRepo, storageSvc, logger)
	productSvc := services.NewProductService(productRepo, variantRepo, variantImageRepo, ingestSvc, logger)
	orderSvc := services.NewOrderService(orderRepo, addressRepo, variantRepo, productRepo)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, userRepo)
	userHandlers := handlers.NewUserHandlers(userRepo)
	addressHandlers := handlers.NewAddressHandlers(addressRepo)
	categoryHandlers := handlers.NewCategoryHandlers(categoryRepo)
	roastLevelHandlers := handlers.NewRoastLevelHandlers(roastLevelRepo)
	productHandlers := handlers.NewProductHandlers(productRepo, productSvc)
	variantHandlers := handlers.NewVariantHandlers(variantRepo, productRepo)
	variantImageHandlers := handlers.NewVariantImageHandlers(ingestSvc, variantImageSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)

	e := echo.New()
	e.HideBanner = true

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.BodyLimit("60M"))

	e.GET("/health", handlers.HealthCheck)
	e.GET("/health/ready", handlers.ReadinessCheck(pool))

	v1 := e.Group("/v1")

	// Authentication routes (no JWT required)
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandlers.Signup)
	auth.POST("/login", authHandlers.Login)

	// Public catalog routes
	v1.GET("/categories", categoryHandlers.ListCategories)
	v1.GET("/categories/:id", categoryHandlers.GetCategory)
	v1.GET("/roast-levels", roastLevelHandlers.ListRoastLevels)
	v1.GET("/roast-levels/:id", roastLevelHandlers.GetRoastLevel)
	v1.GET("/products", productHandlers.ListProducts)
	v1.GET("/products/:id", productHandlers.GetProduct)
	v1.GET("/products/:id/variants", variantHandlers.ListByProduct)
	v1.GET("/variants/:id", variantHandlers.GetVariant)
	v1.GET("/variants/:id/images", variantImageHandlers.ListByVariant)

	// Authenticated routes
	authed := v1.Group("", middleware.JWTMiddleware(authSvc))
	authed.GET("/me", authHandlers.Me)
	authed.GET("/addresses", addressHandlers.ListAddresses)
	authed.POST("/addresses", addressHandlers.CreateAddress)
	authed.PUT("/addresses/:id", addressHandlers.UpdateAddress)
	authed.DELETE("/addresses/:id", addressHandlers.DeleteAddress)
	authed.GET("/orders", orderHandlers.ListOrders)
	authed.POST("/orders", orderHandlers.CreateOrder)
	authed.GET("/orders/:id", orderHandlers.GetOrder)

	// Admin routes
	admin := v1.Group("", middleware.JWTMiddleware(authSvc), middleware.RequireAdmin())
	admin.GET("/users", userHandlers.ListUsers)
	admin.GET("/users/:id", userHandlers.GetUser)
	admin.PUT("/users/:id", userHandlers.UpdateUser)
	admin.DELETE("/users/:id", userHandlers.DeleteUser)

	admin.POST("/categories", categoryHandlers.CreateCategory)
	admin.PUT("/categories/:id", categoryHandlers.UpdateCategory)
	admin.DELETE("/categories/:id", categoryHandlers.DeleteCategory)

	admin.POST("/roast-levels", roastLevelHandlers.CreateRoastLevel)
	admin.PUT("/roast-levels/:id", roastLevelHandlers.UpdateRoastLevel)
	admin.DELETE("/roast-levels/:id", roastLevelHandlers.DeleteRoastLevel)

	admin.POST("/products", productHandlers.CreateProduct)
	admin.POST("/products/full", productHandlers.CreateFullProduct)
	admin.PUT("/products/:id", productHandlers.UpdateProduct)
	admin.DELETE("/products/:id", productHandlers.DeleteProduct)

	admin.POST("/variants", variantHandlers.CreateVariant)
	admin.PUT("/variants/:id", variantHandlers.UpdateVariant)
	admin.DELETE("/variants/:id", variantHandlers.DeleteVariant)

	admin.POST("/variant-images", variantImageHandlers.Upload)
	admin.POST("/variant-images/batch", variantImageHandlers.UploadBatch)
	admin.PUT("/variant-images/:id", variantImageHandlers.Update)
	admin.DELETE("/variant-images/:id", variantImageHandlers.Delete)
	admin.DELETE("/variant-images/:id/smart", variantImageHandlers.SmartDelete)

	admin.GET("/admin/orders", orderHandlers.ListAllOrders)
	admin.PUT("/orders/:id/status", orderHandlers.UpdateOrderStatus)

	logger.Info().Str("version", version).Int("port", cfg.Port).Msg("beanmart server starting")
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
