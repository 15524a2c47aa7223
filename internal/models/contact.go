package models

import "time"

// ContactStatus tracks how far an inbox message has been handled.
type ContactStatus string

const (
	ContactNew      ContactStatus = "NEW"
	ContactRead     ContactStatus = "READ"
	ContactReplied  ContactStatus = "REPLIED"
	ContactArchived ContactStatus = "ARCHIVED"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactNew, ContactRead, ContactReplied, ContactArchived:
		return true
	}
	return false
}

// ContactMessage is a submission from the public contact form. The
// PublicID is what callers see; the internal ID never leaves the API.
type ContactMessage struct {
	ID          string        `gorm:"primaryKey;type:text" json:"-"`
	PublicID    string        `gorm:"uniqueIndex" json:"id"`
	FirstName   string        `json:"firstName"`
	LastName    string        `json:"lastName"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	InquiryType string        `json:"inquiryType"`
	Subject     string        `json:"subject"`
	Message     string        `gorm:"type:text" json:"message"`
	Status      ContactStatus `gorm:"type:text;default:'NEW';index" json:"status"`
	CreatedAt   time.Time     `gorm:"index" json:"createdAt"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
