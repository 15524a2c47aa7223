package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swgpfha/swgpfha-website/internal/config"
	"github.com/swgpfha/swgpfha-website/internal/database"
	"github.com/swgpfha/swgpfha-website/internal/models"
	"github.com/swgpfha/swgpfha-website/internal/services"
	"github.com/swgpfha/swgpfha-website/pkg/logger"
	"github.com/swgpfha/swgpfha-website/pkg/utils"
	"gorm.io/gorm"
)

// Paystack is the gateway client, swappable in tests.
var Paystack *services.PaystackClient

func InitPaystack() {
	Paystack = services.NewPaystackClient(config.AppConfig.PaystackSecretKey)
}

// VerifyPayment verifies a transaction reference against Paystack and
// records the donation, idempotently keyed by reference so the
// frontend can poll.
func VerifyPayment(c *gin.Context) {
	ref := strings.TrimSpace(c.Query("reference"))
	if ref == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing reference"})
		return
	}
	if Paystack == nil || Paystack.SecretKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment gateway not configured"})
		return
	}

	payload, err := Paystack.VerifyTransaction(ref)
	if err != nil || payload == nil || payload.Data == nil {
		logger.Error().Err(err).Str("reference", ref).Msg("paystack verify failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Paystack verify failed"})
		return
	}

	saved, err := upsertDonation(ref, payload.Data)
	if err != nil {
		logger.Error().Err(err).Str("reference", ref).Msg("donation upsert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok": saved.Status == models.DonationSuccess,
		"saved": gin.H{
			"id":        saved.ID,
			"reference": saved.Reference,
			"status":    saved.Status,
		},
		"data": payload.Data,
	})
}

func upsertDonation(ref string, tx *services.PaystackTransaction) (*models.Donation, error) {
	metadata, _ := json.Marshal(tx.Metadata)

	donorName := tx.Field("donor")
	if donorName == "" {
		donorName = strings.TrimSpace(tx.Field("first_name") + " " + tx.Field("last_name"))
	}
	email := tx.Customer.Email
	if email == "" {
		email = tx.Field("email")
	}

	var donation models.Donation
	err := database.DB.Where("reference = ?", ref).First(&donation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		donation = models.Donation{
			ID:        utils.GenerateID(),
			Reference: ref,
			CreatedAt: time.Now(),
		}
	} else if err != nil {
		return nil, err
	}

	donation.Status = models.MapGatewayStatus(tx.Status)
	donation.AmountMinor = tx.Amount
	donation.Amount = float64(tx.Amount) / 100
	donation.Currency = tx.Currency
	if donation.Currency == "" {
		donation.Currency = "GHS"
	}
	donation.Channel = tx.Channel
	donation.Method = tx.Field("method")
	donation.DonorName = donorName
	donation.FirstName = tx.Field("first_name")
	donation.LastName = tx.Field("last_name")
	donation.Email = email
	donation.Phone = tx.Field("msisdn")
	donation.GatewayResponse = tx.GatewayResponse
	donation.MetadataJSON = string(metadata)
	donation.PaidAt = tx.PaidAt
	donation.UpdatedAt = time.Now()

	if err := database.DB.Save(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

// PaystackWebhook receives asynchronous gateway events. The signature
// is an HMAC-SHA512 of the raw body; anything unsigned is rejected
// before parsing.
func PaystackWebhook(c *gin.Context) {
	if Paystack == nil || Paystack.SecretKey == "" {
		c.Status(http.StatusInternalServerError)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	signature := c.GetHeader("x-paystack-signature")
	if !Paystack.VerifyWebhookSignature(body, signature) {
		c.Status(http.StatusUnauthorized)
		return
	}

	var event services.PaystackWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if event.Data != nil && event.Data.Reference != "" {
		if _, err := upsertDonation(event.Data.Reference, event.Data); err != nil {
			logger.Error().Err(err).Str("reference", event.Data.Reference).Msg("webhook donation upsert failed")
			c.Status(http.StatusInternalServerError)
			return
		}
	}

	logger.Info().
		Str("event", event.Event).
		Msg("paystack webhook processed")
	c.Status(http.StatusOK)
}

// AdminListDonations returns a page of donation records, newest first.
func AdminListDonations(c *gin.Context) {
	page, pageSize := pageParams(c, 20)

	query := database.DB.Model(&models.Donation{})
	if raw := strings.ToUpper(c.Query("status")); raw != "" {
		query = query.Where("status = ?", raw)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	var items []models.Donation
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		logger.Error().Err(err).Msg("donations admin list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":    items,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}
