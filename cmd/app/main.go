package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	mongoadapter "fulfillment/internal/adapters/out/mongo"
	"fulfillment/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"go.mongodb.org/mongo-driver/mongo"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mongoDB, disconnect := mustConnectMongo(configs)
	defer disconnect()

	app := cmd.NewCompositionRoot(configs, gormDB, mongoDB, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort:                 getEnv("HTTP_PORT", "8080"),
		DBHost:                   os.Getenv("DB_HOST"),
		DBPort:                   getEnv("DB_PORT", "5432"),
		DBUser:                   os.Getenv("DB_USER"),
		DBPassword:               os.Getenv("DB_PASSWORD"),
		DBName:                   os.Getenv("DB_NAME"),
		DBSslMode:                getEnv("DB_SSLMODE", "disable"),
		MongoURI:                 os.Getenv("MONGO_URI"),
		MongoDB:                  getEnv("MONGO_DB", "catalog"),
		CarrierBaseURL:           os.Getenv("CARRIER_BASE_URL"),
		CarrierEmail:             os.Getenv("CARRIER_EMAIL"),
		CarrierPassword:          os.Getenv("CARRIER_PASSWORD"),
		MessagingBaseURL:         os.Getenv("MESSAGING_BASE_URL"),
		MessagingToken:           os.Getenv("MESSAGING_TOKEN"),
		SettingsTTL:              getSeconds("SETTINGS_TTL_SECONDS", 60),
		NotificationDispatchCron: os.Getenv("NOTIFICATION_DISPATCH_CRON"),
		NotificationBatchSize:    getInt("NOTIFICATION_BATCH_SIZE", 50),
		ShipmentClaimTTL:         getSeconds("SHIPMENT_CLAIM_TTL_SECONDS", 120),
		OutboundTimeout:          getSeconds("OUTBOUND_TIMEOUT_SECONDS", 15),
	}
	return config
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("%s must be an integer: %v", key, err)
	}
	return v
}

func getSeconds(key string, fallback int) time.Duration {
	return time.Duration(getInt(key, fallback)) * time.Second
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	err := postgres.CreateDatabaseIfNotExists(configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}

	dsn := postgres.MakeConnectionString(configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)
	gormDB, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	return gormDB
}

func mustConnectMongo(configs cmd.Config) (*mongo.Database, func()) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongoadapter.Connect(ctx, configs.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to mongo: %v", err)
	}

	db := client.Database(configs.MongoDB)
	if err = mongoadapter.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create mongo indexes: %v", err)
	}

	return db, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	app.CreateHTTPServer().Register(e)
	if err := httpin.RegisterDocs(e); err != nil {
		log.Fatalf("Failed to load the OpenAPI document: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Error(err)
	}
}
