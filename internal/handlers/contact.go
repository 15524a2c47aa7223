package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swgpfha/swgpfha-website/internal/database"
	"github.com/swgpfha/swgpfha-website/internal/models"
	"github.com/swgpfha/swgpfha-website/pkg/logger"
	"github.com/swgpfha/swgpfha-website/pkg/utils"
)

type createMessageInput struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	InquiryType string `json:"inquiryType" binding:"required"`
	Subject     string `json:"subject" binding:"required,min=2"`
	Message     string `json:"message" binding:"required,min=5"`
}

// newPublicID returns a short URL-safe id (~12 chars) shown to the
// sender as their reference number.
func newPublicID() string {
	b := make([]byte, 9)
	if _, err := rand.Read(b); err != nil {
		return utils.GenerateID()[:12]
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// CreateContactMessage accepts a public contact-form submission.
func CreateContactMessage(c *gin.Context) {
	// Redis counter on top of the in-process limiter: 3 per hour per IP
	allowed, err := database.CheckRateLimit("contact:"+c.ClientIP(), 3, time.Hour)
	if err != nil {
		logger.Warn().Err(err).Msg("contact rate limit check failed")
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many messages. Please try again later."})
		return
	}

	var input createMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := models.ContactMessage{
		ID:          utils.GenerateID(),
		PublicID:    newPublicID(),
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:       strings.TrimSpace(input.Phone),
		InquiryType: input.InquiryType,
		Subject:     strings.TrimSpace(input.Subject),
		Message:     strings.TrimSpace(input.Message),
		Status:      models.ContactNew,
		CreatedAt:   time.Now(),
	}

	if err := database.DB.Create(&msg).Error; err != nil {
		logger.Error().Err(err).Msg("contact create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":        true,
		"id":        msg.PublicID,
		"createdAt": msg.CreatedAt,
	})
}

// AdminListContactMessages returns a page of inbox messages, newest
// first, optionally filtered by status.
func AdminListContactMessages(c *gin.Context) {
	page, pageSize := pageParams(c, 20)

	query := database.DB.Model(&models.ContactMessage{})
	if raw := strings.ToUpper(c.Query("status")); raw != "" {
		if st := models.ContactStatus(raw); st.Valid() {
			query = query.Where("status = ?", st)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	var items []models.ContactMessage
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		logger.Error().Err(err).Msg("contact admin list failed")
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

// AdminUpdateContactStatus moves a message through the inbox workflow.
func AdminUpdateContactStatus(c *gin.Context) {
	publicID := c.Param("publicId")

	var input struct {
		Status models.ContactStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !input.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	res := database.DB.Model(&models.ContactMessage{}).
		Where("public_id = ?", publicID).
		Update("status", input.Status)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "id": publicID, "status": input.Status})
}

// pageParams reads page / pageSize query params, clamping pageSize to
// [1,100].
func pageParams(c *gin.Context, defaultSize int) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultSize)))
	if err != nil || pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
