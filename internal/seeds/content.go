package seeds

import (
	"time"

	"github.com/swgpfha/swgpfha-website/internal/models"
	"github.com/swgpfha/swgpfha-website/pkg/logger"
	"github.com/swgpfha/swgpfha-website/pkg/utils"
	"gorm.io/gorm"
)

// Default blocks the public pages reference by slug. Seeded published
// so a fresh deployment renders without an admin pass.
var defaultBlocks = []struct {
	Slug    string
	Section string
	Content string
}{
	{"home.hero", "Home", "Serving communities with compassion and dignity."},
	{"home.mission", "Home", "We partner with local leaders to expand access to health and education."},
	{"about.story", "About", "Founded by volunteers, the foundation grew out of a single community clinic."},
	{"mission.statement", "Mission", "Every person deserves the opportunity to thrive."},
	{"contact.intro", "Contact", "We would love to hear from you."},
}

// SeedContent inserts the default content blocks, skipping any slug
// that already exists.
func SeedContent(db *gorm.DB) error {
	now := time.Now()
	seeded := 0

	for _, b := range defaultBlocks {
		var count int64
		if err := db.Model(&models.ContentBlock{}).Where("slug = ?", b.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		block := models.ContentBlock{
			ID:          utils.GenerateID(),
			Slug:        b.Slug,
			Section:     b.Section,
			Content:     b.Content,
			Status:      models.ContentPublished,
			PublishedAt: &now,
			LastUpdated: now,
			CreatedAt:   now,
		}
		if err := db.Create(&block).Error; err != nil {
			return err
		}
		seeded++
	}

	logger.Info().Int("seeded", seeded).Msg("content seed complete")
	return nil
}
