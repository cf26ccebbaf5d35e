package main

import (
	"context"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"strconv"
	"time"

	"pizzeria/cmd"
	httpadapter "pizzeria/internal/adapters/in/http"
	"pizzeria/internal/adapters/out/natsbus"
	"pizzeria/internal/adapters/out/postgres/orderrepo"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	gormDB := openDatabase(configs)

	var publisher ports.OrderEventPublisher
	if configs.NatsURL != "" {
		natsPublisher, err := natsbus.NewPublisher(configs.NatsURL, logger)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	root, err := cmd.NewCompositionRoot(context.Background(), configs, gormDB, publisher, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := startJobs(&root, configs, logger)
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:           envOrDefault("HTTP_PORT", "8080"),
		DBHost:             envOrDefault("DB_HOST", "localhost"),
		DBPort:             envOrDefault("DB_PORT", "5432"),
		DBUser:             envOrDefault("DB_USER", "postgres"),
		DBPassword:         envOrDefault("DB_PASSWORD", "postgres"),
		DBName:             envOrDefault("DB_NAME", "pizzeria"),
		DBSslMode:          envOrDefault("DB_SSLMODE", "disable"),
		UserServiceURL:     envOrDefault("USER_SERVICE_URL", "http://localhost:8081"),
		MenuServiceURL:     envOrDefault("MENU_SERVICE_URL", "http://localhost:8082"),
		NatsURL:            os.Getenv("NATS_URL"),
		UserLookupTimeout:  envDuration("USER_LOOKUP_TIMEOUT", 3*time.Second),
		PaymentMaxAttempts: envInt("PAYMENT_MAX_ATTEMPTS", 3),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid %s value %q: %v", key, value, err)
	}
	return parsed
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid %s value %q: %v", key, value, err)
	}
	return parsed
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.DeliveryDetailsDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startJobs(root *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) *jobs.JobManager {
	manager := jobs.NewJobManager(
		root.CreateRetryFailedPaymentsCommandHandler(),
		configs.PaymentMaxAttempts,
		logger,
	)

	if err := manager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	return manager
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.HideBanner = true

	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateChangeOrderStatusCommandHandler(),
		root.CreateGetAllOrdersQueryHandler(),
		root.CreateGetOrderQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
