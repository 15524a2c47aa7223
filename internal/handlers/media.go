package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	appConfig "github.com/swgpfha/swgpfha-website/internal/config"
	"github.com/swgpfha/swgpfha-website/internal/database"
	"github.com/swgpfha/swgpfha-website/internal/models"
	"github.com/swgpfha/swgpfha-website/pkg/logger"
	"github.com/swgpfha/swgpfha-website/pkg/utils"
)

func getS3Client() (*s3.Client, error) {
	cfg := appConfig.AppConfig
	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID),
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithEndpointResolverWithOptions(r2Resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

// classifyMediaType maps a mimetype to the app-level media type.
func classifyMediaType(mimeType string) models.MediaType {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return models.MediaPhoto
	case strings.HasPrefix(mimeType, "video/"):
		return models.MediaVideo
	}
	// pdf, docx, txt, etc.
	return models.MediaDocument
}

func uploadAsset(client *s3.Client, header *multipart.FileHeader, folder string) (url, format string, err error) {
	file, err := header.Open()
	if err != nil {
		return "", "", err
	}
	defer file.Close()

	cfg := appConfig.AppConfig
	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := fmt.Sprintf("%s/%s%s", folder, utils.GenerateID(), ext)

	_, err = client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(cfg.R2BucketName),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(header.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", "", err
	}

	publicURL := cfg.R2PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.r2.dev", cfg.R2BucketName)
	}

	return fmt.Sprintf("%s/%s", publicURL, key), strings.TrimPrefix(ext, "."), nil
}

type createMediaInput struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Location    string           `json:"location"`
	EventDate   *time.Time       `json:"eventDate"`
	Type        models.MediaType `json:"type"`
}

// AdminCreateMedia accepts multipart/form-data with a "data" JSON field
// describing the item plus up to 12 files, uploads each file to R2 and
// records the assets. The first asset seeds the item's cover.
func AdminCreateMedia(c *gin.Context) {
	raw := c.PostForm("data")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing data"})
		return
	}

	var input createMediaInput
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": err.Error()})
		return
	}
	if len(strings.TrimSpace(input.Title)) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title must be at least 2 characters"})
		return
	}
	if !input.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid type"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}
	files := form.File["files"]
	if len(files) > 12 {
		files = files[:12]
	}

	client, err := getS3Client()
	if err != nil {
		logger.Error().Err(err).Msg("media: storage client init failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to init storage client"})
		return
	}

	item := models.MediaItem{
		ID:          utils.GenerateID(),
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		EventDate:   input.EventDate,
		Type:        input.Type,
		CreatedAt:   time.Now(),
	}
	if err := database.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	for _, header := range files {
		url, format, err := uploadAsset(client, header, "media/"+string(item.Type))
		if err != nil {
			logger.Error().Err(err).Str("file", header.Filename).Msg("media upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
			return
		}

		asset := models.MediaAsset{
			ID:        utils.GenerateID(),
			ItemID:    item.ID,
			URL:       url,
			ThumbURL:  url,
			Provider:  "r2",
			Format:    format,
			Size:      header.Size,
			CreatedAt: time.Now(),
		}
		if err := database.DB.Create(&asset).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		if item.CoverURL == "" {
			item.CoverURL = asset.URL
			item.ThumbURL = asset.ThumbURL
			database.DB.Model(&models.MediaItem{}).Where("id = ?", item.ID).
				Updates(map[string]interface{}{"cover_url": item.CoverURL, "thumb_url": item.ThumbURL})
		}
	}

	var saved models.MediaItem
	if err := database.DB.Preload("Assets").First(&saved, "id = ?", item.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// ListMedia is shared by the public and admin listings.
func ListMedia(c *gin.Context) {
	page, pageSize := pageParams(c, 12)

	query := database.DB.Model(&models.MediaItem{})
	if t := models.MediaType(c.Query("type")); t != "" && t.Valid() {
		query = query.Where("type = ?", t)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	var items []models.MediaItem
	err := query.
		Preload("Assets").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		logger.Error().Err(err).Msg("media list failed")
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

// AdminDeleteMedia removes an item and its assets.
func AdminDeleteMedia(c *gin.Context) {
	id := c.Param("id")

	if err := database.DB.Delete(&models.MediaAsset{}, "item_id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	res := database.DB.Delete(&models.MediaItem{}, "id = ?", id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
