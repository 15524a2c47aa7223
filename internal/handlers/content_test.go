package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swgpfha/swgpfha-website/internal/database"
	"github.com/swgpfha/swgpfha-website/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testCtx(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func jsonRequest(c *gin.Context, method, target string, body interface{}) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
}

func seedBlock(t *testing.T, id, slug, section, content string, status models.ContentStatus, publishedAt *time.Time) models.ContentBlock {
	t.Helper()
	now := time.Now()
	b := models.ContentBlock{
		ID:          id,
		Slug:        slug,
		Section:     section,
		Content:     content,
		Status:      status,
		PublishedAt: publishedAt,
		LastUpdated: now,
		CreatedAt:   now,
	}
	require.NoError(t, database.DB.Create(&b).Error)
	return b
}

func timePtr(v time.Time) *time.Time { return &v }

func TestGetContentBySlugNormalizesLookup(t *testing.T) {
	SetupTestDB()
	seedBlock(t, "id-hero01", "home.hero", "Home", "Welcome home", models.ContentPublished, timePtr(time.Now()))

	c, w := testCtx(t)
	jsonRequest(c, http.MethodGet, "/api/content/x", nil)
	c.Params = gin.Params{{Key: "slug", Value: "  Home.Hero  "}}

	GetContentBySlug(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var got models.ContentBlock
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "id-hero01", got.ID)
	assert.Equal(t, "home.hero", got.Slug)
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
}

func TestGetContentBySlugNotFound(t *testing.T) {
	SetupTestDB()

	c, w := testCtx(t)
	jsonRequest(c, http.MethodGet, "/api/content/x", nil)
	c.Params = gin.Params{{Key: "slug", Value: "Missing.Slug"}}

	GetContentBySlug(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	// the 404 echoes the slug in normalized form
	assert.Equal(t, "missing.slug", body["slug"])
}

func TestGetContentBySlugIgnoresDrafts(t *testing.T) {
	SetupTestDB()
	seedBlock(t, "id-draft1", "about.story", "About", "wip", models.ContentDraft, nil)

	c, w := testCtx(t)
	jsonRequest(c, http.MethodGet, "/api/content/x", nil)
	c.Params = gin.Params{{Key: "slug", Value: "about.story"}}

	GetContentBySlug(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetContentBySlugs(t *testing.T) {
	SetupTestDB()
	seedBlock(t, "id-hero01", "home.hero", "Home", "hero text", models.ContentPublished, timePtr(time.Now()))
	seedBlock(t, "id-miss01", "home.mission", "Home", "mission text", models.ContentPublished, timePtr(time.Now()))
	seedBlock(t, "id-draft1", "home.draft", "Home", "unpublished", models.ContentDraft, nil)

	c, w := testCtx(t)
	jsonRequest(c, http.MethodGet, "/api/content/by-slugs?slugs=Home.Hero,%20home.mission%20,home.draft,nosuch", nil)

	GetContentBySlugs(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data map[string]struct {
			Content   string    `json:"content"`
			UpdatedAt time.Time `json:"updatedAt"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	require.Len(t, body.Data, 2)
	assert.Equal(t, "hero text", body.Data["home.hero"].Content)
	assert.Equal(t, "mission text", body.Data["home.mission"].Content)
	_, hasDraft := body.Data["home.draft"]
	assert.False(t, hasDraft, "draft slugs must be omitted, not errored")
}

func TestGetContentBySlugsEmpty(t *testing.T) {
	SetupTestDB()

	c, w := testCtx(t)
	jsonRequest(c, http.MethodGet, "/api/content/by-slugs?slugs=%20,%20", nil)

	GetContentBySlugs(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{}}`, w.Body.String())
}

func TestSaveContentCreatesDraft(t *testing.T) {
	SetupTestDB()

	c, w := testCtx(t)
	jsonRequest(c, http.MethodPost, "/api/admin/content", gin.H{
		"slug":    "  New.Block  ",
		"section": "Home",
		"content": "fresh",
	})

	SaveContent(c)

	require.Equal(t, http.StatusOK, w.Code)

	var saved models.ContentBlock
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, "new.block", saved.Slug)
	assert.Equal(t, models.ContentDraft, saved.Status)
	assert.Nil(t, saved.PublishedAt)
	assert.NotEmpty(t, saved.ID)
}

func TestSaveContentPublishNow(t *testing.T) {
	SetupTestDB()

	c, w := testCtx(t)
	jsonRequest(c, http.MethodPost, "/api/admin/content", gin.H{
		"slug":       "home.hero",
		"section":    "Home",
		"content":    "live",
		"publishNow": true,
	})

	SaveContent(c)

	require.Equal(t, http.StatusOK, w.Code)

	var saved models.ContentBlock
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, models.ContentPublished, saved.Status)
	require.NotNil(t, saved.PublishedAt)
}

func TestSaveContentUpsertsBySlug(t *testing.T) {
	SetupTestDB()
	seedBlock(t, "id-exist1", "home.hero", "Home", "old", models.ContentPublished, timePtr(time.Now()))

	c, w := testCtx(t)
	jsonRequest(c, http.MethodPost, "/api/admin/content", gin.H{
		"slug":    "Home.Hero",
		"section": "Home",
		"content": "new body",
		"status":  "PUBLISHED",
	})

	SaveContent(c)

	require.Equal(t, http.StatusOK, w.Code)

	var saved models.ContentBlock
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, "id-exist1", saved.ID, "same slug must update in place, not create")
	assert.Equal(t, "new body", saved.Content)

	var count int64
	database.DB.Model(&models.ContentBlock{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSaveContentDraftKeepsPublishedAt(t *testing.T) {
	SetupTestDB()
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	seedBlock(t, "id-pub001", "home.hero", "Home", "live", models.ContentPublished, &stamp)

	c, w := testCtx(t)
	jsonRequest(c, http.MethodPost, "/api/admin/content", gin.H{
		"id":      "id-pub001",
		"slug":    "home.hero",
		"section": "Home",
		"content": "edited as draft",
		"status":  "DRAFT",
	})

	SaveContent(c)

	require.Equal(t, http.StatusOK, w.Code)

	var saved models.ContentBlock
	require.NoError(t, database.DB.First(&saved, "id = ?", "id-pub001").Error)
	assert.Equal(t, models.ContentDraft, saved.Status)
	// the old publish timestamp survives; only unpublish clears it
	require.NotNil(t, saved.PublishedAt)
	assert.True(t, saved.PublishedAt.Equal(stamp))
}

func TestSaveContentUnknownIDIs404(t *testing.T) {
	SetupTestDB()

	c, w := testCtx(t)
	jsonRequest(c, http.MethodPost, "/api/admin/content", gin.H{
		"id":      "no-such-id",
		"slug":    "home.hero",
		"section": "Home",
		"content": "x",
	})

	SaveContent(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveContentValidation(t *testing.T) {
	SetupTestDB()

	cases := []gin.H{
		{"slug": " x ", "section": "Home", "content": "body"},  // slug too short after trim
		{"slug": "home.hero", "section": "H", "content": "b"},  // section too short
		{"slug": "home.hero", "section": "Home", "status": "LIVE"}, // unknown status
	}
	for _, input := range cases {
		c, w := testCtx(t)
		jsonRequest(c, http.MethodPost, "/api/admin/content", input)
		SaveContent(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	var count int64
	database.DB.Model(&models.ContentBlock{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestPublishAndUnpublish(t *testing.T) {
	SetupTestDB()
	seedBlock(t, "id-flip01", "home.hero", "Home", "body", models.ContentDraft, nil)

	c, w := testCtx(t)
	jsonRequest(c, http.MethodPut, "/api/admin/content/id-flip01/publish", nil)
	c.Params = gin.Params{{Key: "id", Value: "id-flip01"}}

	PublishContent(c)
	require.Equal(t, http.StatusOK, w.Code)

	var b models.ContentBlock
	require.NoError(t, database.DB.First(&b, "id = ?", "id-flip01").Error)
	assert.Equal(t, models.ContentPublished, b.Status)
	require.NotNil(t, b.PublishedAt)

	c, w = testCtx(t)
	jsonRequest(c, http.MethodPut, "/api/admin/content/id-flip01/unpublish", nil)
	c.Params = gin.Params{{Key: "id", Value: "id-flip01"}}

	UnpublishContent(c)
	require.Equal(t, http.StatusOK, w.Code)

	b = models.ContentBlock{}
	require.NoError(t, database.DB.First(&b, "id = ?", "id-flip01").Error)
	assert.Equal(t, models.ContentDraft, b.Status)
	assert.Nil(t, b.PublishedAt)
}

func TestPublishUnknownIDIs404(t *testing.T) {
	SetupTestDB()

	c, w := testCtx(t)
	jsonRequest(c, http.MethodPut, "/api/admin/content/nope/publish", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	PublishContent(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPublishedContentFiltersAndOrders(t *testing.T) {
	SetupTestDB()
	seedBlock(t, "id-a", "about.story", "About", "a", models.ContentPublished, timePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	seedBlock(t, "id-b", "home.hero", "Home", "b", models.ContentPublished, timePtr(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	seedBlock(t, "id-c", "home.mission", "Home", "c", models.ContentPublished, timePtr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	seedBlock(t, "id-d", "home.draft", "Home", "d", models.ContentDraft, nil)

	c, w := testCtx(t)
	jsonRequest(c, http.MethodGet, "/api/content", nil)

	ListPublishedContent(c)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []models.ContentBlock `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 3)

	// section ASC, then publish recency within a section
	assert.Equal(t, "id-a", body.Items[0].ID)
	assert.Equal(t, "id-b", body.Items[1].ID)
	assert.Equal(t, "id-c", body.Items[2].ID)
}

func TestAdminSearchContent(t *testing.T) {
	SetupTestDB()
	seedBlock(t, "id-a", "home.hero", "Home", "We support vulnerable children across the region.", models.ContentPublished, timePtr(time.Now()))
	seedBlock(t, "id-b", "about.story", "About", "Founded in 2015.", models.ContentDraft, nil)

	c, w := testCtx(t)
	jsonRequest(c, http.MethodGet, "/api/admin/search?q=children", nil)

	AdminSearchContent(c)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []struct {
			ID      string `json:"id"`
			Snippet string `json:"snippet"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "id-a", body.Items[0].ID)
	assert.Contains(t, body.Items[0].Snippet, "children")
}

func TestAdminSearchContentEmptyQuery(t *testing.T) {
	SetupTestDB()
	seedBlock(t, "id-a", "home.hero", "Home", "body", models.ContentPublished, timePtr(time.Now()))

	c, w := testCtx(t)
	jsonRequest(c, http.MethodGet, "/api/admin/search?q=%20%20", nil)

	AdminSearchContent(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[]}`, w.Body.String())
}

func TestAdminSearchContentEscapesWildcards(t *testing.T) {
	SetupTestDB()
	seedBlock(t, "id-a", "home.hero", "Home", "discount is 100% off", models.ContentPublished, timePtr(time.Now()))
	seedBlock(t, "id-b", "home.other", "Home", "no percent here", models.ContentPublished, timePtr(time.Now()))

	c, w := testCtx(t)
	jsonRequest(c, http.MethodGet, "/api/admin/search?q=100%25", nil)

	AdminSearchContent(c)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "id-a", body.Items[0].ID)
}

func TestBuildSnippet(t *testing.T) {
	long := strings.Repeat("a", 200) + "NEEDLE" + strings.Repeat("b", 200)

	s := buildSnippet(long, "needle")
	assert.True(t, strings.HasPrefix(s, "…"))
	assert.True(t, strings.HasSuffix(s, "…"))
	assert.Contains(t, s, "NEEDLE")
	// 80 chars each side plus the match and two markers
	assert.LessOrEqual(t, len(s), 80+len("NEEDLE")+80+2*len("…"))

	// match at the start: no leading marker
	s = buildSnippet("NEEDLE"+strings.Repeat("x", 300), "needle")
	assert.False(t, strings.HasPrefix(s, "…"))
	assert.True(t, strings.HasSuffix(s, "…"))

	// short text, no truncation at all
	assert.Equal(t, "tiny NEEDLE text", buildSnippet("tiny NEEDLE text", "needle"))

	// no match: leading slice fallback
	s = buildSnippet(strings.Repeat("z", 300), "needle")
	assert.Equal(t, strings.Repeat("z", 160)+"…", s)
}

func TestFixContentSlugsEndpoint(t *testing.T) {
	SetupTestDB()
	seedBlock(t, "id-aaa001", "Home.Hero", "Home", "a", models.ContentPublished, timePtr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	seedBlock(t, "id-bbb002", "home.hero", "Home", "b", models.ContentPublished, timePtr(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))

	c, w := testCtx(t)
	jsonRequest(c, http.MethodPost, "/api/admin/fix-slugs", nil)

	FixContentSlugs(c)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		OK      bool `json:"ok"`
		Groups  int  `json:"normalized_groups"`
		Actions []struct {
			Action string `json:"action"`
			ID     string `json:"id"`
		} `json:"actions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.Equal(t, 1, body.Groups)
	require.Len(t, body.Actions, 1)
	assert.Equal(t, "deduped", body.Actions[0].Action)
	assert.Equal(t, "id-aaa001", body.Actions[0].ID)
}
