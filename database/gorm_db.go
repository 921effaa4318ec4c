package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/solidario/pagosbackend/models"
)

// InitGormDB initializes and returns a GORM database instance. usePostgres
// selects the postgres driver; otherwise the DSN is treated as a sqlite path.
func InitGormDB(dataSourceName string, usePostgres bool) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	var dialector gorm.Dialector
	if usePostgres {
		dialector = postgres.Open(dataSourceName)
	} else {
		dialector = sqlite.Open(dataSourceName)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true, // surface duplicate-key violations as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database using GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("database initialized successfully")
	return db, nil
}

// AutoMigrateModels migrates all persisted schemas. Called once at startup,
// after InitGormDB.
func AutoMigrateModels(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Registrant{},
		&models.Payment{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	return nil
}
