package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/gorm"

	"northwind/internal/config"
	"northwind/internal/database"
	"northwind/internal/handlers"
	"northwind/internal/metrics"
	"northwind/internal/middleware"
	"northwind/internal/models"
	"northwind/internal/repositories"
	"northwind/internal/services"
	"northwind/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load(viper.New())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if cfg.SeedData {
		if err := seedCatalog(repositories.NewGORMReferenceRepository(db)); err != nil {
			log.Printf("Error seeding catalog: %v", err)
		}
	}

	var publisher services.EventPublisher
	if cfg.RabbitMQ.Enabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		if cfg.RabbitMQ.Consume {
			if err := mqClient.ConsumeEvents(logProductEvent); err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
			}
		}
	} else {
		log.Println("RABBITMQ_URL is empty. Product events are disabled.")
	}

	app, _, err := NewApp(cfg, db, publisher)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", cfg.AppPort)
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Server gracefully stopped")
}

// NewApp wires repositories, services and handlers into a fiber app.
// publisher may be nil.
func NewApp(cfg *config.Config, db *gorm.DB, publisher services.EventPublisher) (*fiber.App, *services.AuthService, error) {
	productRepo, err := newProductRepository(cfg.Storage, db)
	if err != nil {
		return nil, nil, err
	}
	userRepo := repositories.NewGORMUserRepository(db)

	productService := services.NewProductService(productRepo, publisher)
	authService := services.NewAuthService(userRepo, cfg.JWT.Secret)

	productHandler := handlers.NewProductHandler(productService, middleware.AuthRequired(authService))
	authHandler := handlers.NewAuthHandler(authService)

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"rabbitMQ": publisher != nil,
		})
	})
	app.Get("/metrics", metrics.Handler())

	authHandler.RegisterRoutes(app)
	productHandler.RegisterRoutes(app)

	return app, authService, nil
}

func newProductRepository(storage string, db *gorm.DB) (repositories.ProductRepository, error) {
	switch storage {
	case config.StorageGORM:
		return repositories.NewGORMProductRepository(db), nil
	case config.StorageMemory:
		return repositories.NewMemoryProductRepository(repositories.NewGORMReferenceRepository(db)), nil
	default:
		return nil, fmt.Errorf("unsupported storage %q", storage)
	}
}

// errorHandler keeps the {message} body shape for errors no handler caught,
// panics recovered by the recover middleware included.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"message": err.Error()})
}

func logProductEvent(msg amqp.Delivery) error {
	log.Printf("Received product event (tag %d): %s", msg.DeliveryTag, msg.Body)
	return nil
}

// seedCatalog populates suppliers and categories when the tables are empty.
func seedCatalog(repo repositories.ReferenceRepository) error {
	existing, err := repo.ListSuppliers()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	suppliers := []models.Supplier{
		{SupplierName: "Exotic Liquid", ContactName: "Charlotte Cooper", City: "Londona", Country: "UK"},
		{SupplierName: "New Orleans Cajun Delights", ContactName: "Shelley Burke", City: "New Orleans", Country: "USA"},
		{SupplierName: "Grandma Kelly's Homestead", ContactName: "Regina Murphy", City: "Ann Arbor", Country: "USA"},
	}
	for i := range suppliers {
		if err := repo.CreateSupplier(&suppliers[i]); err != nil {
			return err
		}
		log.Printf("Seeded supplier: %s (ID: %d)", suppliers[i].SupplierName, suppliers[i].ID)
	}

	categories := []models.Category{
		{CategoryName: "Beverages", Description: "Soft drinks, coffees, teas, beers, and ales"},
		{CategoryName: "Condiments", Description: "Sweet and savory sauces, relishes, spreads, and seasonings"},
		{CategoryName: "Confections", Description: "Desserts, candies, and sweet breads"},
	}
	for i := range categories {
		if err := repo.CreateCategory(&categories[i]); err != nil {
			return err
		}
		log.Printf("Seeded category: %s (ID: %d)", categories[i].CategoryName, categories[i].ID)
	}
	return nil
}
