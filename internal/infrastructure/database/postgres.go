package database

import (
	"fmt"
	"log"

	"github.com/printdesk/daybook-api/internal/config"
	"github.com/printdesk/daybook-api/internal/domain/entity"
	"github.com/printdesk/daybook-api/internal/domain/enum"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.Service{},
		&entity.Transaction{},
		&entity.TransactionItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// defaultServices is the catalog seeded on first boot. Prices are in paise.
// Xerox prices follow the shop's standard per-page rate card.
func defaultServices() []entity.Service {
	strPtr := func(s string) *string { return &s }
	colorPtr := func(c enum.ColorType) *enum.ColorType { return &c }
	orientPtr := func(o enum.PaperOrientation) *enum.PaperOrientation { return &o }

	return []entity.Service{
		{ServiceType: enum.ServiceTypeXerox, Name: "Xerox B/W A4", Price: 200, PaperSize: strPtr("A4"), ColorType: colorPtr(enum.ColorTypeBlackWhite), PaperOrientation: orientPtr(enum.OrientationSingleSide)},
		{ServiceType: enum.ServiceTypeXerox, Name: "Xerox B/W A4 Both Sides", Price: 300, PaperSize: strPtr("A4"), ColorType: colorPtr(enum.ColorTypeBlackWhite), PaperOrientation: orientPtr(enum.OrientationBothSides)},
		{ServiceType: enum.ServiceTypeXerox, Name: "Xerox B/W A3", Price: 500, PaperSize: strPtr("A3"), ColorType: colorPtr(enum.ColorTypeBlackWhite), PaperOrientation: orientPtr(enum.OrientationSingleSide)},
		{ServiceType: enum.ServiceTypeXerox, Name: "Xerox Color A4", Price: 1000, PaperSize: strPtr("A4"), ColorType: colorPtr(enum.ColorTypeColor), PaperOrientation: orientPtr(enum.OrientationSingleSide)},
		{ServiceType: enum.ServiceTypeXerox, Name: "Xerox Color A3", Price: 2000, PaperSize: strPtr("A3"), ColorType: colorPtr(enum.ColorTypeColor), PaperOrientation: orientPtr(enum.OrientationSingleSide)},
		{ServiceType: enum.ServiceTypeScanning, Name: "Document Scan", Price: 500, PaperSize: strPtr("A4")},
		{ServiceType: enum.ServiceTypeNetPrinting, Name: "Net Printing B/W A4", Price: 500, PaperSize: strPtr("A4"), ColorType: colorPtr(enum.ColorTypeBlackWhite)},
		{ServiceType: enum.ServiceTypeNetPrinting, Name: "Net Printing Color A4", Price: 1500, PaperSize: strPtr("A4"), ColorType: colorPtr(enum.ColorTypeColor)},
		{ServiceType: enum.ServiceTypeSpiralBinding, Name: "Spiral Binding", Price: 3000},
		{ServiceType: enum.ServiceTypeLamination, Name: "Lamination A4", Price: 2000, PaperSize: strPtr("A4")},
		{ServiceType: enum.ServiceTypeRubberStamps, Name: "Rubber Stamp", Price: 15000},
	}
}

// SeedDefaultData seeds the service catalog and an admin user when configured
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	var count int64
	if err := db.Model(&entity.Service{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check service catalog: %w", err)
	}

	if count == 0 {
		services := defaultServices()
		for i := range services {
			if err := db.Create(&services[i]).Error; err != nil {
				log.Printf("Warning: failed to seed service %s: %v", services[i].Name, err)
			}
		}
		log.Printf("Seeded %d catalog services", len(services))
	}

	// Create the shop admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existing entity.User
		if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
			log.Printf("Admin user already exists: %s", adminEmail)
			return nil
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Warning: failed to hash admin password: %v", err)
			return nil
		}

		if adminName == "" {
			adminName = "Shop Admin"
		}
		firstName := adminName
		lastName := ""
		for i, c := range adminName {
			if c == ' ' {
				firstName = adminName[:i]
				lastName = adminName[i+1:]
				break
			}
		}

		admin := entity.User{
			FirstName: firstName,
			LastName:  lastName,
			Email:     adminEmail,
			Password:  string(hashed),
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Printf("Warning: failed to create admin user: %v", err)
		} else {
			log.Printf("Admin user created: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
