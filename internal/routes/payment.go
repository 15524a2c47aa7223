package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/swgpfha/swgpfha-website/internal/handlers"
)

func RegisterPaymentRoutes(r *gin.RouterGroup, adminGuard gin.HandlerFunc) {
	payments := r.Group("/payments")
	{
		payments.GET("/verify-payment", handlers.VerifyPayment)
		// Webhook verifies its own HMAC signature
		payments.POST("/webhook", handlers.PaystackWebhook)
	}

	admin := r.Group("/admin/payments")
	admin.Use(adminGuard)
	{
		admin.GET("", handlers.AdminListDonations)
	}
}
