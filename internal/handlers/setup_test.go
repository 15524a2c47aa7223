package handlers

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/swgpfha/swgpfha-website/internal/database"
	"github.com/swgpfha/swgpfha-website/internal/models"
	"github.com/swgpfha/swgpfha-website/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupTestDB points the global DB at a fresh in-memory SQLite
// database. Each call uses a unique shared-cache name so tests never
// see each other's rows.
func SetupTestDB() {
	logger.Init("test")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}
	database.DB = db
	database.DB.AutoMigrate(
		&models.ContentBlock{},
		&models.ContactMessage{},
		&models.Opportunity{},
		&models.MediaItem{},
		&models.MediaAsset{},
		&models.Donation{},
	)
}
