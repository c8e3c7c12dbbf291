package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"inventory/internal/handlers"
	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	// Environment variables with defaults, read through Viper.
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite") // sqlite | postgres | memory
	viper.SetDefault("DB_DSN", "inventory.db")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables event publishing
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	dbDriver := viper.GetString("DB_DRIVER")
	dbDSN := viper.GetString("DB_DSN")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize RabbitMQ Client (optional) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, event publishing disabled")
	}

	// A typed nil must not end up inside the interface, so the publisher
	// is only assigned when a client actually exists.
	var publisher services.EventPublisher
	if mqClient != nil {
		publisher = mqClient
	}

	// --- Initialize Repositories ---
	productRepo, orderRepo, err := buildRepositories(dbDriver, dbDSN)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// --- Initialize Services ---
	productService := services.NewProductService(productRepo, publisher)
	orderService := services.NewOrderService(orderRepo, productRepo, publisher)

	// --- Initialize Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)

	// --- Initialize Fiber App ---
	app := fiber.New()
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	productHandler.RegisterRoutes(app)
	orderHandler.RegisterRoutes(app)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer ---
	// Logs every inventory event flowing through the queue; a real
	// deployment would hang reporting or notification logic here.
	if mqClient != nil {
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Received inventory event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		}
		if consumerErr := mqClient.ConsumeInventoryEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// buildRepositories wires the repository pair for the configured driver.
// The in-memory pair needs the cascade hook that a relational store gets
// for free from its foreign key.
func buildRepositories(driver, dsn string) (repositories.ProductRepository, repositories.OrderRepository, error) {
	if driver == "memory" {
		productRepo := repositories.NewMockProductRepository()
		orderRepo := repositories.NewMockOrderRepository()
		productRepo.CascadeTo(orderRepo.DeleteByProduct)
		return productRepo, orderRepo, nil
	}

	db, err := openDatabase(driver, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Order{}); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return repositories.NewGORMProductRepository(db), repositories.NewGORMOrderRepository(db), nil
}

// openDatabase opens a GORM connection for the configured driver.
// TranslateError makes unique-constraint violations comparable with
// gorm.ErrDuplicatedKey regardless of driver.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}

	switch driver {
	case "sqlite":
		// SQLite only honors ON DELETE CASCADE with foreign keys switched on.
		if !strings.Contains(dsn, "_foreign_keys") {
			if strings.Contains(dsn, "?") {
				dsn += "&_foreign_keys=on"
			} else {
				dsn += "?_foreign_keys=on"
			}
		}
		db, err := gorm.Open(sqlite.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return db, nil
	case "postgres":
		db, err := gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want sqlite, postgres, or memory)", driver)
	}
}
