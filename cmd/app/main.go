package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"boutique/cmd"
	"boutique/internal/adapters/out/postgres/customerrepo"
	"boutique/internal/adapters/out/postgres/ledgerrepo"
	"boutique/internal/adapters/out/postgres/orderrepo"
	"boutique/internal/adapters/out/postgres/stockrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&customerrepo.CustomerDTO{},
		&customerrepo.LoyaltyDTO{},
		&stockrepo.LineDTO{},
		&stockrepo.MovementDTO{},
		&ledgerrepo.EntryDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building composition root: %v", err)
	}

	if err := app.RebuildBoard(context.Background()); err != nil {
		log.Fatalf("Error rebuilding dispatch board: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		TelegramToken:  goDotEnvVariable("TELEGRAM_TOKEN"),
		TelegramAPIURL: goDotEnvVariable("TELEGRAM_API_URL"),
		AdminChatID:    goDotEnvVariable("ADMIN_CHAT_ID"),
		SupportChatID:  goDotEnvVariable("SUPPORT_CHAT_ID"),

		Zones:       goDotEnvVariable("ZONES"),
		DefaultZone: goDotEnvVariable("DEFAULT_ZONE"),

		AdminPassword:     goDotEnvVariable("ADMIN_PASSWORD"),
		SessionTTLMinutes: goDotEnvVariable("SESSION_TTL_MINUTES"),

		LoyaltyThreshold: goDotEnvVariable("LOYALTY_THRESHOLD"),
		LoyaltyRate:      goDotEnvVariable("LOYALTY_RATE"),
		LoyaltyCap:       goDotEnvVariable("LOYALTY_CAP"),

		LowStockThreshold: goDotEnvVariable("LOW_STOCK_THRESHOLD"),
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

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	app.CreateServer().RegisterRoutes(e)
	app.CreateTelegramWebhook().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
