package database

import (
	"log"

	"github.com/creatorrank/creatorrank-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase(databaseURL string) *gorm.DB {
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	// TranslateError so duplicate-key violations surface as
	// gorm.ErrDuplicatedKey instead of a raw pgconn error.
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Subscription{},
		&models.WebhookEventRecord{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}
