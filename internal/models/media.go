package models

import "time"

type MediaType string

const (
	MediaPhoto    MediaType = "photo"
	MediaVideo    MediaType = "video"
	MediaDocument MediaType = "document"
)

func (t MediaType) Valid() bool {
	switch t {
	case MediaPhoto, MediaVideo, MediaDocument:
		return true
	}
	return false
}

// MediaItem is a gallery entry (an event's photo set, a report, a
// video) with one or more uploaded assets.
type MediaItem struct {
	ID          string       `gorm:"primaryKey;type:text" json:"id"`
	Title       string       `json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Location    string       `json:"location"`
	EventDate   *time.Time   `json:"eventDate"`
	Type        MediaType    `gorm:"type:text;index" json:"type"`
	CoverURL    string       `json:"coverUrl"`
	ThumbURL    string       `json:"thumbUrl"`
	CreatedAt   time.Time    `gorm:"index" json:"createdAt"`
	Assets      []MediaAsset `gorm:"foreignKey:ItemID" json:"assets"`
}

func (MediaItem) TableName() string {
	return "media_items"
}

// MediaAsset is one stored file belonging to a MediaItem.
type MediaAsset struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	ItemID    string    `gorm:"index" json:"itemId"`
	URL       string    `json:"url"`
	ThumbURL  string    `json:"thumbUrl"`
	Provider  string    `json:"provider"` // "r2" or "local"
	Format    string    `json:"format"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

func (MediaAsset) TableName() string {
	return "media_assets"
}
