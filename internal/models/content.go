package models

import "time"

// ContentStatus is the publish lifecycle of a content block.
type ContentStatus string

const (
	ContentDraft     ContentStatus = "DRAFT"
	ContentPublished ContentStatus = "PUBLISHED"
	ContentArchived  ContentStatus = "ARCHIVED"
)

// Valid reports whether s is one of the known statuses.
func (s ContentStatus) Valid() bool {
	switch s {
	case ContentDraft, ContentPublished, ContentArchived:
		return true
	}
	return false
}

// ContentBlock is one row of CMS-managed content addressed by a slug.
// Content is an opaque payload (plain text or a serialized rich-text
// document); the store never interprets it.
type ContentBlock struct {
	ID          string        `gorm:"primaryKey;type:text" json:"id"`
	Slug        string        `gorm:"uniqueIndex" json:"slug"`
	Section     string        `gorm:"index" json:"section"`
	Content     string        `gorm:"type:text" json:"content"`
	Status      ContentStatus `gorm:"type:text;default:'DRAFT';index" json:"status"`
	PublishedAt *time.Time    `gorm:"index" json:"publishedAt"`
	LastUpdated time.Time     `gorm:"autoUpdateTime;index" json:"lastUpdated"`
	CreatedAt   time.Time     `json:"createdAt"`
}

func (ContentBlock) TableName() string {
	return "content_blocks"
}
