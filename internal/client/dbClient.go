package client

import (
	"log"
	"smartsub/internal/model"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the ledger database and runs migrations. An empty databaseURL
// falls back to a local sqlite file for development.
func InitDB(databaseURL string) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)
	if databaseURL == "" {
		db, err = gorm.Open(sqlite.Open("smartsub.db"), &gorm.Config{})
	} else {
		db, err = gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	}
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		log.Fatal(err)
	}

	return db
}

// Migrate creates or updates the ledger schema. There is no further
// bootstrap state; the deploying identity holds no special role.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Subscription{},
		&model.UserSubscription{},
		&model.CreatorBalance{},
		&model.Payment{},
	)
}
