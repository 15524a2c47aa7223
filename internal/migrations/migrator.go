package migrations

import (
	"time"

	"github.com/swgpfha/swgpfha-website/pkg/logger"
	"gorm.io/gorm"
)

// Migration is one schema change applied exactly once, after
// AutoMigrate has created the tables.
type Migration struct {
	ID   string // e.g. "001_add_content_indexes"
	Name string
	Up   func(db *gorm.DB) error
}

// MigrationRecord tracks which migrations have been applied
type MigrationRecord struct {
	ID        string    `gorm:"primaryKey;type:text"`
	Name      string    `gorm:"type:text"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

func (MigrationRecord) TableName() string {
	return "migration_records"
}

var registry = []Migration{
	addContentIndexes,
}

// Run applies every unapplied migration in registration order.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return err
	}

	for _, m := range registry {
		var count int64
		if err := db.Model(&MigrationRecord{}).Where("id = ?", m.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		logger.Info().Str("migration", m.ID).Msg("applying migration")
		if err := m.Up(db); err != nil {
			return err
		}
		if err := db.Create(&MigrationRecord{ID: m.ID, Name: m.Name}).Error; err != nil {
			return err
		}
	}
	return nil
}
