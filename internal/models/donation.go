package models

import "time"

type DonationStatus string

const (
	DonationPending   DonationStatus = "PENDING"
	DonationSuccess   DonationStatus = "SUCCESS"
	DonationFailed    DonationStatus = "FAILED"
	DonationAbandoned DonationStatus = "ABANDONED"
)

// MapGatewayStatus translates Paystack's transaction status strings
// into our enum; anything unknown stays PENDING.
func MapGatewayStatus(s string) DonationStatus {
	switch s {
	case "success":
		return DonationSuccess
	case "failed":
		return DonationFailed
	case "abandoned":
		return DonationAbandoned
	}
	return DonationPending
}

// Donation is one gateway transaction, keyed by the Paystack
// reference so re-verification stays idempotent.
type Donation struct {
	ID              string         `gorm:"primaryKey;type:text" json:"id"`
	Reference       string         `gorm:"uniqueIndex" json:"reference"`
	Status          DonationStatus `gorm:"type:text;index" json:"status"`
	AmountMinor     int64          `json:"amountMinor"` // kobo/pesewas
	Amount          float64        `json:"amount"`
	Currency        string         `json:"currency"`
	Channel         string         `json:"channel"`
	Method          string         `json:"method"`
	DonorName       string         `json:"donorName"`
	FirstName       string         `json:"firstName"`
	LastName        string         `json:"lastName"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	GatewayResponse string         `json:"gatewayResponse"`
	MetadataJSON    string         `gorm:"type:text" json:"-"`
	PaidAt          *time.Time     `json:"paidAt"`
	CreatedAt       time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func (Donation) TableName() string {
	return "donations"
}
