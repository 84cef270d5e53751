package storage

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the clinic's primary MySQL store. The assistant only ever
// reads from it; writes belong to the CRUD services that own the records.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate creates the record tables when absent. Idempotent. In production
// the schema is owned by the CRUD services; this mainly serves local setups
// and tests.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Patient{},
		&Doctor{},
		&Registration{},
		&Examination{},
		&Schedule{},
	)
}
