package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/swgpfha/swgpfha-website/internal/handlers"
)

// RegisterContentRoutes wires the content block store. Admin paths sit
// under the same prefix so the frontend keeps a single content base URL.
func RegisterContentRoutes(r *gin.RouterGroup, adminGuard gin.HandlerFunc) {
	content := r.Group("/content")

	// Public
	content.GET("", handlers.ListPublishedContent)
	content.GET("/by-slugs", handlers.GetContentBySlugs)
	content.GET("/:slug", handlers.GetContentBySlug)

	// Admin
	admin := content.Group("/admin")
	admin.Use(adminGuard)
	{
		admin.GET("/list", handlers.AdminListContent)
		admin.GET("/search", handlers.AdminSearchContent)
		admin.POST("/content", handlers.SaveContent)
		admin.PATCH("/content/:id/publish", handlers.PublishContent)
		admin.PATCH("/content/:id/unpublish", handlers.UnpublishContent)
		admin.POST("/fix-slugs", handlers.FixContentSlugs)
	}
}
