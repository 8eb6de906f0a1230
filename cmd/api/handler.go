package api

import (
	authUsecase "interest-registry/internal/auth/usecase"
	sellerDelivery "interest-registry/internal/seller/delivery"
	subscriptionDelivery "interest-registry/internal/subscription/delivery"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase         authUsecase.AuthUsecase
	subscriptionHandler *subscriptionDelivery.SubscriptionHandler
	sellerHandler       *sellerDelivery.SellerHandler
	ginMode             string
}

func NewHandler(authUc authUsecase.AuthUsecase, subscriptionHandler *subscriptionDelivery.SubscriptionHandler, sellerHandler *sellerDelivery.SellerHandler, ginMode string) *Handler {
	return &Handler{
		authUsecase:         authUc,
		subscriptionHandler: subscriptionHandler,
		sellerHandler:       sellerHandler,
		ginMode:             ginMode,
	}
}

// Engine builds the gin engine with middleware and routes
func (h *Handler) Engine() *gin.Engine {
	gin.SetMode(h.ginMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.subscriptionHandler, h.sellerHandler)
	return r
}

func (h *Handler) Start(addr string) error {
	return h.Engine().Run(addr)
}
