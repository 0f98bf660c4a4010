package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"deliverytracking/cmd"
	adapter "deliverytracking/internal/adapters/in/http"
	"deliverytracking/internal/adapters/out/geolocation"
	"deliverytracking/internal/adapters/out/postgres/orderrepo"
	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := openDatabase(configs)
	if err := orderrepo.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB)

	registry := app.CreateSessionRegistry(headlessPositionProvider{}, logger)
	jobManager := jobs.NewJobManager(registry, app.CreateGetActiveDeliveriesQueryHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		OrderStoreBaseURL:   goDotEnvVariable("ORDER_STORE_BASE_URL"),
		OrderStoreAuthToken: goDotEnvVariable("ORDER_STORE_AUTH_TOKEN"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

// headlessPositionProvider is the server binary's stand-in for a device
// location API: the admin server has no GPS, so it grants permission and
// never emits a fix. Driver-facing binaries supply a real provider.
type headlessPositionProvider struct{}

func (headlessPositionProvider) RequestPermission(_ context.Context) error {
	return nil
}

func (headlessPositionProvider) WatchPosition(_ func(kernel.PositionSample)) (func(), error) {
	return func() {}, nil
}

var _ geolocation.PositionProvider = headlessPositionProvider{}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := adapter.NewServer(
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateUpdateDriverLocationCommandHandler(),
		app.CreateGetDeliveryOrderQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
