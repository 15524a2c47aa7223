package migrations

import "gorm.io/gorm"

// The public content list sorts by section then publish recency; the
// composite index keeps that query off a full scan once the block
// count grows.
var addContentIndexes = Migration{
	ID:   "001_add_content_indexes",
	Name: "Composite indexes for content list ordering",
	Up: func(db *gorm.DB) error {
		stmts := []string{
			"CREATE INDEX IF NOT EXISTS idx_content_published_listing ON content_blocks (status, section, published_at DESC)",
			"CREATE INDEX IF NOT EXISTS idx_donations_status_created ON donations (status, created_at DESC)",
		}
		for _, s := range stmts {
			if err := db.Exec(s).Error; err != nil {
				return err
			}
		}
		return nil
	},
}
