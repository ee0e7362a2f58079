package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/printdesk/daybook-api/internal/application/service"
	"github.com/printdesk/daybook-api/internal/config"
	"github.com/printdesk/daybook-api/internal/infrastructure/database"
	"github.com/printdesk/daybook-api/internal/infrastructure/repository"
	"github.com/printdesk/daybook-api/internal/presentation/http/handler"
	"github.com/printdesk/daybook-api/internal/presentation/http/routes"
	"github.com/printdesk/daybook-api/pkg/printer"
	"github.com/printdesk/daybook-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the default catalog and admin account
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	catalogService := service.NewCatalogService(serviceRepo)
	ledgerService := service.NewLedgerService(txRepo, serviceRepo)
	reportService := service.NewReportService(reportRepo)
	daySheetService := service.NewDaySheetService(txRepo, userRepo, thermalPrinter, cfg.Shop, cfg.Printer.Width)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Ledger:   handler.NewLedgerHandler(ledgerService),
		Report:   handler.NewReportHandler(reportService),
		DaySheet: handler.NewDaySheetHandler(daySheetService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
