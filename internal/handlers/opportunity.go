package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swgpfha/swgpfha-website/internal/database"
	"github.com/swgpfha/swgpfha-website/internal/models"
	"github.com/swgpfha/swgpfha-website/pkg/logger"
	"github.com/swgpfha/swgpfha-website/pkg/utils"
	"gorm.io/gorm"
)

type opportunityView struct {
	models.Opportunity
	Skills []string `json:"skills"`
}

func toOpportunityView(o models.Opportunity) opportunityView {
	return opportunityView{Opportunity: o, Skills: o.SkillList()}
}

// ListOpportunities returns volunteer openings, Active by default.
func ListOpportunities(c *gin.Context) {
	status := models.OpportunityActive
	if c.Query("status") == string(models.OpportunityClosed) {
		status = models.OpportunityClosed
	}

	var rows []models.Opportunity
	err := database.DB.
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		logger.Error().Err(err).Msg("opportunities list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	views := make([]opportunityView, 0, len(rows))
	for _, r := range rows {
		views = append(views, toOpportunityView(r))
	}
	c.JSON(http.StatusOK, views)
}

// GetOpportunity returns a single opening by id.
func GetOpportunity(c *gin.Context) {
	var row models.Opportunity
	err := database.DB.First(&row, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, toOpportunityView(row))
}

// skillsField accepts either a JSON array of strings or a single
// comma-separated string, matching what the admin form sends.
type skillsField []string

func (s *skillsField) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*s = list
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	*s = out
	return nil
}

type opportunityInput struct {
	Title       string                   `json:"title"`
	TimeType    string                   `json:"timeType"`
	Location    string                   `json:"location"`
	Description string                   `json:"description"`
	Skills      skillsField              `json:"skills"`
	Status      models.OpportunityStatus `json:"status"`
}

func (in *opportunityInput) validate() string {
	if len(strings.TrimSpace(in.Title)) < 2 {
		return "title must be at least 2 characters"
	}
	if !models.ValidTimeType(in.TimeType) {
		return "invalid timeType"
	}
	if len(strings.TrimSpace(in.Description)) < 10 {
		return "description must be at least 10 characters"
	}
	if in.Status != "" && in.Status != models.OpportunityActive && in.Status != models.OpportunityClosed {
		return "invalid status"
	}
	return ""
}

// AdminCreateOpportunity creates a new opening.
func AdminCreateOpportunity(c *gin.Context) {
	var input opportunityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := input.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	status := input.Status
	if status == "" {
		status = models.OpportunityActive
	}

	row := models.Opportunity{
		ID:          utils.GenerateID(),
		Title:       strings.TrimSpace(input.Title),
		TimeType:    input.TimeType,
		Location:    strings.TrimSpace(input.Location),
		Description: strings.TrimSpace(input.Description),
		Status:      status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	row.SetSkills(input.Skills)

	if err := database.DB.Create(&row).Error; err != nil {
		logger.Error().Err(err).Msg("opportunity create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, toOpportunityView(row))
}

// AdminUpdateOpportunity applies a partial update.
func AdminUpdateOpportunity(c *gin.Context) {
	id := c.Param("id")

	var row models.Opportunity
	err := database.DB.First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	var input map[string]json.RawMessage
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	apply := func(key string, dst interface{}) bool {
		raw, ok := input[key]
		if !ok {
			return true
		}
		return json.Unmarshal(raw, dst) == nil
	}

	var skills skillsField
	ok := apply("title", &row.Title) &&
		apply("timeType", &row.TimeType) &&
		apply("location", &row.Location) &&
		apply("description", &row.Description) &&
		apply("status", &row.Status) &&
		apply("skills", &skills)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if _, present := input["skills"]; present {
		row.SetSkills(skills)
	}

	full := opportunityInput{
		Title:       row.Title,
		TimeType:    row.TimeType,
		Location:    row.Location,
		Description: row.Description,
		Status:      row.Status,
	}
	if msg := full.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	row.UpdatedAt = time.Now()
	if err := database.DB.Save(&row).Error; err != nil {
		logger.Error().Err(err).Str("id", id).Msg("opportunity update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, toOpportunityView(row))
}

// AdminDeleteOpportunity removes an opening permanently.
func AdminDeleteOpportunity(c *gin.Context) {
	res := database.DB.Delete(&models.Opportunity{}, "id = ?", c.Param("id"))
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
