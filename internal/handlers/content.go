package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swgpfha/swgpfha-website/internal/database"
	"github.com/swgpfha/swgpfha-website/internal/middleware"
	"github.com/swgpfha/swgpfha-website/internal/models"
	"github.com/swgpfha/swgpfha-website/internal/services"
	"github.com/swgpfha/swgpfha-website/pkg/logger"
	"github.com/swgpfha/swgpfha-website/pkg/utils"
	"gorm.io/gorm"
)

const searchResultCap = 100

// ListPublishedContent returns every published block, grouped for
// display: section, then publish recency.
func ListPublishedContent(c *gin.Context) {
	var items []models.ContentBlock
	err := database.DB.
		Where("status = ?", models.ContentPublished).
		Order("section ASC, published_at DESC, last_updated DESC").
		Find(&items).Error
	if err != nil {
		logger.Error().Err(err).Msg("content list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	middleware.NoCache(c)
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AdminListContent returns all blocks regardless of status.
func AdminListContent(c *gin.Context) {
	var items []models.ContentBlock
	if err := database.DB.Order("last_updated DESC").Find(&items).Error; err != nil {
		logger.Error().Err(err).Msg("content admin list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type contentSearchResult struct {
	models.ContentBlock
	Snippet string `json:"snippet"`
}

// AdminSearchContent does a substring search across section, slug and
// content, annotating each hit with a snippet around the first match.
func AdminSearchContent(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, gin.H{"items": []contentSearchResult{}})
		return
	}

	pattern := utils.SanitizeSearchQuery(q)
	var items []models.ContentBlock
	err := database.DB.
		Where("section LIKE ? ESCAPE '\\' OR slug LIKE ? ESCAPE '\\' OR content LIKE ? ESCAPE '\\'", pattern, pattern, pattern).
		Order("published_at DESC, last_updated DESC").
		Limit(searchResultCap).
		Find(&items).Error
	if err != nil {
		logger.Error().Err(err).Str("q", q).Msg("content search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	results := make([]contentSearchResult, 0, len(items))
	for _, item := range items {
		results = append(results, contentSearchResult{
			ContentBlock: item,
			Snippet:      buildSnippet(item.Content, q),
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": results})
}

// buildSnippet centers 80 characters of context on each side of the
// first (case-insensitive) match, with ellipsis markers at truncation
// boundaries. Without a match it falls back to the first 160 chars.
func buildSnippet(text, query string) string {
	const span = 80

	idx := strings.Index(strings.ToLower(text), strings.ToLower(query))
	if idx < 0 {
		if len(text) > 160 {
			return text[:160] + "…"
		}
		return text
	}

	start := idx - span
	if start < 0 {
		start = 0
	}
	end := idx + len(query) + span
	if end > len(text) {
		end = len(text)
	}

	snippet := text[start:end]
	if start > 0 {
		snippet = "…" + snippet
	}
	if end < len(text) {
		snippet = snippet + "…"
	}
	return snippet
}

// GetContentBySlug returns the newest published block for a slug. The
// incoming slug is normalized, so case/whitespace variants resolve to
// the same record. The t query param is a cache-buster and is ignored.
func GetContentBySlug(c *gin.Context) {
	slug := utils.NormalizeSlug(c.Param("slug"))

	var item models.ContentBlock
	err := database.DB.
		Where("slug = ? AND status = ?", slug, models.ContentPublished).
		Order("published_at DESC, last_updated DESC").
		First(&item).Error

	middleware.NoCache(c)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Warn().Str("slug", slug).Msg("content not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "slug": slug})
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("slug", slug).Msg("content get failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, item)
}

type slugContent struct {
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GetContentBySlugs resolves a comma-separated slug list to the newest
// published block per slug. Slugs with no published match are omitted.
func GetContentBySlugs(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("slugs"))
	if raw == "" {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{}})
		return
	}

	var slugs []string
	for _, s := range strings.Split(raw, ",") {
		if n := utils.NormalizeSlug(s); n != "" {
			slugs = append(slugs, n)
		}
	}
	if len(slugs) == 0 {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{}})
		return
	}

	var rows []models.ContentBlock
	err := database.DB.
		Where("slug IN ? AND status = ?", slugs, models.ContentPublished).
		Order("published_at DESC, last_updated DESC").
		Find(&rows).Error
	if err != nil {
		logger.Error().Err(err).Msg("content by-slugs failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	// keep newest per slug
	data := make(map[string]slugContent, len(rows))
	for _, r := range rows {
		if _, seen := data[r.Slug]; seen {
			continue
		}
		updatedAt := r.LastUpdated
		if r.PublishedAt != nil {
			updatedAt = *r.PublishedAt
		}
		data[r.Slug] = slugContent{Content: r.Content, UpdatedAt: updatedAt}
	}

	middleware.NoCache(c)
	c.JSON(http.StatusOK, gin.H{"data": data})
}

type saveContentInput struct {
	ID         string               `json:"id"`
	Slug       string               `json:"slug"`
	Section    string               `json:"section"`
	Content    string               `json:"content"`
	Status     models.ContentStatus `json:"status"`
	PublishNow bool                 `json:"publishNow"`
}

// SaveContent creates or updates a block. With an id it updates that
// record; otherwise it upserts by normalized slug. publishNow (or an
// explicit PUBLISHED status) forces a publish and stamps publishedAt.
// Saving as draft leaves a prior publish timestamp in place; only
// unpublish clears it.
func SaveContent(c *gin.Context) {
	var input saveContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slug := utils.NormalizeSlug(input.Slug)
	if len(slug) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug must be at least 2 characters"})
		return
	}
	if len(strings.TrimSpace(input.Section)) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "section must be at least 2 characters"})
		return
	}

	status := input.Status
	if status == "" {
		status = models.ContentDraft
	}
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	willPublish := input.PublishNow || status == models.ContentPublished
	if willPublish {
		status = models.ContentPublished
	}

	now := time.Now()
	updates := map[string]interface{}{
		"slug":         slug,
		"section":      input.Section,
		"content":      input.Content,
		"status":       status,
		"last_updated": now,
	}
	if willPublish {
		updates["published_at"] = now
	}

	var saved models.ContentBlock

	if input.ID != "" {
		res := database.DB.Model(&models.ContentBlock{}).Where("id = ?", input.ID).Updates(updates)
		if res.Error != nil {
			logger.Error().Err(res.Error).Str("id", input.ID).Msg("content update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "id": input.ID})
			return
		}
		if err := database.DB.First(&saved, "id = ?", input.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		logger.Info().
			Str("id", saved.ID).
			Str("slug", slug).
			Str("status", string(status)).
			Msg("content updated")
		c.JSON(http.StatusOK, saved)
		return
	}

	err := database.DB.Where("slug = ?", slug).First(&saved).Error
	switch {
	case err == nil:
		res := database.DB.Model(&models.ContentBlock{}).Where("id = ?", saved.ID).Updates(updates)
		if res.Error != nil {
			logger.Error().Err(res.Error).Str("slug", slug).Msg("content upsert failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		if err := database.DB.First(&saved, "id = ?", saved.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		saved = models.ContentBlock{
			ID:          utils.GenerateID(),
			Slug:        slug,
			Section:     input.Section,
			Content:     input.Content,
			Status:      status,
			LastUpdated: now,
			CreatedAt:   now,
		}
		if willPublish {
			saved.PublishedAt = &now
		}
		if err := database.DB.Create(&saved).Error; err != nil {
			logger.Error().Err(err).Str("slug", slug).Msg("content create failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
	default:
		logger.Error().Err(err).Str("slug", slug).Msg("content lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	logger.Info().
		Str("id", saved.ID).
		Str("slug", slug).
		Str("status", string(status)).
		Msg("content saved")
	c.JSON(http.StatusOK, saved)
}

// PublishContent sets a block PUBLISHED and stamps publishedAt.
// Allowed from any state.
func PublishContent(c *gin.Context) {
	setPublishState(c, models.ContentPublished)
}

// UnpublishContent returns a block to DRAFT and clears publishedAt.
func UnpublishContent(c *gin.Context) {
	setPublishState(c, models.ContentDraft)
}

func setPublishState(c *gin.Context, status models.ContentStatus) {
	id := c.Param("id")
	now := time.Now()

	updates := map[string]interface{}{
		"status":       status,
		"last_updated": now,
	}
	if status == models.ContentPublished {
		updates["published_at"] = now
	} else {
		updates["published_at"] = nil
	}

	res := database.DB.Model(&models.ContentBlock{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		logger.Error().Err(res.Error).Str("id", id).Msg("publish state change failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "id": id})
		return
	}

	var saved models.ContentBlock
	if err := database.DB.First(&saved, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	logger.Info().
		Str("id", id).
		Str("slug", saved.Slug).
		Str("status", string(status)).
		Msg("content publish state changed")
	c.JSON(http.StatusOK, saved)
}

// FixContentSlugs runs the slug canonicalization pass on demand.
func FixContentSlugs(c *gin.Context) {
	report, err := services.FixSlugs(database.DB)
	if err != nil {
		logger.Error().Err(err).Msg("fix-slugs failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":                true,
		"normalized_groups": report.Groups,
		"actions":           report.Actions,
	})
}
