package api

import (
	"net/http"

	"interest-registry/internal/auth/delivery"
	authUsecase "interest-registry/internal/auth/usecase"
	sellerDelivery "interest-registry/internal/seller/delivery"
	subscriptionDelivery "interest-registry/internal/subscription/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecase.AuthUsecase, subscriptionHandler *subscriptionDelivery.SubscriptionHandler, sellerHandler *sellerDelivery.SellerHandler) {
	// Device subscription routes (authenticated by seller_token in the body)
	r.POST("/subscribe", subscriptionHandler.Subscribe)
	r.POST("/unsubscribe", subscriptionHandler.Unsubscribe)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Admin routes (protected)
		admin := api.Group("/admin")
		admin.Use(delivery.AuthMiddleware(authUsecase), delivery.RequireAdmin())
		{
			admin.GET("/interests/:interest/subscriptions", subscriptionHandler.ListSubscriptions)
			admin.POST("/sellers", sellerHandler.CreateSeller)
		}
	}
}
