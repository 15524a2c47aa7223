package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/swgpfha/swgpfha-website/internal/handlers"
)

func RegisterMediaRoutes(r *gin.RouterGroup, adminGuard gin.HandlerFunc) {
	r.GET("/media", handlers.ListMedia)

	admin := r.Group("/admin/media")
	admin.Use(adminGuard)
	{
		admin.GET("", handlers.ListMedia)
		admin.POST("", handlers.AdminCreateMedia)
		admin.DELETE("/:id", handlers.AdminDeleteMedia)
	}
}
