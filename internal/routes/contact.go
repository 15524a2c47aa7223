package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/swgpfha/swgpfha-website/internal/handlers"
	"github.com/swgpfha/swgpfha-website/internal/middleware"
)

func RegisterContactRoutes(r *gin.RouterGroup, adminGuard gin.HandlerFunc) {
	contact := r.Group("/contact-messages")

	contact.POST("", middleware.ContactRateLimit(), handlers.CreateContactMessage)

	admin := contact.Group("")
	admin.Use(adminGuard)
	{
		admin.GET("", handlers.AdminListContactMessages)
		admin.PATCH("/:publicId/status", handlers.AdminUpdateContactStatus)
	}
}
