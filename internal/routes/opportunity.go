package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/swgpfha/swgpfha-website/internal/handlers"
)

func RegisterOpportunityRoutes(r *gin.RouterGroup, adminGuard gin.HandlerFunc) {
	public := r.Group("/opportunities")
	{
		public.GET("", handlers.ListOpportunities)
		public.GET("/:id", handlers.GetOpportunity)
	}

	admin := r.Group("/admin/opportunities")
	admin.Use(adminGuard)
	{
		admin.POST("", handlers.AdminCreateOpportunity)
		admin.PUT("/:id", handlers.AdminUpdateOpportunity)
		admin.DELETE("/:id", handlers.AdminDeleteOpportunity)
	}
}
