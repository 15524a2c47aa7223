package models

import (
	"encoding/json"
	"time"
)

type OpportunityStatus string

const (
	OpportunityActive OpportunityStatus = "Active"
	OpportunityClosed OpportunityStatus = "Closed"
)

// Time commitment labels shown on the site.
var OpportunityTimeTypes = []string{"Full-Time", "Part-Time", "Flexible", "Remote"}

func ValidTimeType(t string) bool {
	for _, v := range OpportunityTimeTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Opportunity is a volunteer opening. Skills are stored as a
// JSON-encoded string array so dev (sqlite) and prod (postgres)
// behave identically.
type Opportunity struct {
	ID          string            `gorm:"primaryKey;type:text" json:"id"`
	Title       string            `json:"title"`
	TimeType    string            `json:"timeType"`
	Location    string            `json:"location"`
	Description string            `gorm:"type:text" json:"description"`
	Skills      string            `gorm:"type:text" json:"-"`
	Status      OpportunityStatus `gorm:"type:text;default:'Active';index" json:"status"`
	CreatedAt   time.Time         `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func (Opportunity) TableName() string {
	return "opportunities"
}

// SkillList decodes the stored skills JSON; malformed or empty data
// decodes to an empty list rather than an error.
func (o *Opportunity) SkillList() []string {
	if o.Skills == "" {
		return []string{}
	}
	var skills []string
	if err := json.Unmarshal([]byte(o.Skills), &skills); err != nil {
		return []string{}
	}
	out := skills[:0]
	for _, s := range skills {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SetSkills encodes the list into the stored column.
func (o *Opportunity) SetSkills(skills []string) {
	if skills == nil {
		skills = []string{}
	}
	b, _ := json.Marshal(skills)
	o.Skills = string(b)
}
