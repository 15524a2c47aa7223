package services

import (
	"sort"
	"strings"
	"time"

	"github.com/swgpfha/swgpfha-website/internal/models"
	"github.com/swgpfha/swgpfha-website/pkg/logger"
	"github.com/swgpfha/swgpfha-website/pkg/utils"
	"gorm.io/gorm"
)

// SlugAction records one rename performed by FixSlugs.
type SlugAction struct {
	Action string `json:"action"` // "canonicalized" or "deduped"
	ID     string `json:"id"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// SlugFixReport is the audit result of a canonicalization pass.
type SlugFixReport struct {
	Groups  int          `json:"normalized_groups"`
	Actions []SlugAction `json:"actions"`
}

// FixSlugs repairs drift where several content blocks normalize to the
// same slug. Records are grouped by their normalized slug; within each
// group the most recently published record wins the canonical slug and
// every other record is renamed to a unique id-derived slug. All
// renames commit in a single transaction, so a failed pass leaves
// every slug untouched. Running it again with no intervening writes
// produces zero actions.
func FixSlugs(db *gorm.DB) (*SlugFixReport, error) {
	var rows []models.ContentBlock
	if err := db.Order("published_at DESC, last_updated DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	groups := make(map[string][]models.ContentBlock)
	for _, r := range rows {
		fixed := utils.NormalizeSlug(r.Slug)
		groups[fixed] = append(groups[fixed], r)
	}

	// Sorted keys keep the report deterministic run to run.
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Every slug the pass will leave behind. Canonical keys are
	// reserved up front so a dedup target can never collide with a
	// winner's slug.
	taken := make(map[string]bool, len(groups))
	for k := range groups {
		taken[k] = true
	}

	report := &SlugFixReport{Groups: len(groups), Actions: []SlugAction{}}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, fixed := range keys {
			arr := groups[fixed]

			// Prefer most recently published, then lastUpdated,
			// then createdAt. Nil publishedAt sorts as epoch.
			sort.SliceStable(arr, func(i, j int) bool {
				ip, jp := pubTime(arr[i]), pubTime(arr[j])
				if !ip.Equal(jp) {
					return ip.After(jp)
				}
				if !arr[i].LastUpdated.Equal(arr[j].LastUpdated) {
					return arr[i].LastUpdated.After(arr[j].LastUpdated)
				}
				return arr[i].CreatedAt.After(arr[j].CreatedAt)
			})

			winner, dups := arr[0], arr[1:]

			if winner.Slug != fixed {
				if err := renameSlug(tx, winner.ID, fixed); err != nil {
					return err
				}
				report.Actions = append(report.Actions, SlugAction{
					Action: "canonicalized", ID: winner.ID, From: winner.Slug, To: fixed,
				})
				logger.Info().
					Str("id", winner.ID).
					Str("from", winner.Slug).
					Str("to", fixed).
					Msg("fix-slugs: canonicalized")
			}

			for _, r := range dups {
				target := utils.DedupSlug(fixed, r.ID)
				if r.Slug == target {
					taken[target] = true
					continue
				}
				if taken[target] {
					// Two ids sharing a last-6 suffix; the full id is
					// unique by construction.
					target = fixed + "-" + strings.ToLower(r.ID)
				}
				taken[target] = true

				if err := renameSlug(tx, r.ID, target); err != nil {
					return err
				}
				report.Actions = append(report.Actions, SlugAction{
					Action: "deduped", ID: r.ID, From: r.Slug, To: target,
				})
				logger.Info().
					Str("id", r.ID).
					Str("from", r.Slug).
					Str("to", target).
					Msg("fix-slugs: deduped")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

func renameSlug(tx *gorm.DB, id, slug string) error {
	res := tx.Model(&models.ContentBlock{}).Where("id = ?", id).Update("slug", slug)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func pubTime(b models.ContentBlock) time.Time {
	if b.PublishedAt == nil {
		return time.Time{}
	}
	return *b.PublishedAt
}
