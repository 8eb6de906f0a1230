package main

import (
	"context"
	"log"

	api "interest-registry/cmd/api"
	authUsecase "interest-registry/internal/auth/usecase"
	"interest-registry/internal/notification"
	sellerDelivery "interest-registry/internal/seller/delivery"
	sellerdomain "interest-registry/internal/seller/domain"
	sellerRepo "interest-registry/internal/seller/repository"
	subscriptionDelivery "interest-registry/internal/subscription/delivery"
	subscriptiondomain "interest-registry/internal/subscription/domain"
	"interest-registry/internal/subscription/gateway"
	subscriptionRepo "interest-registry/internal/subscription/repository"
	"interest-registry/internal/subscription/resolver"
	"interest-registry/internal/subscription/scheduler"
	subscriptionUsecase "interest-registry/internal/subscription/usecase"
	"interest-registry/pkg/config"
	"interest-registry/pkg/database"
	"interest-registry/pkg/fcm"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&sellerdomain.Seller{}, &subscriptiondomain.Subscription{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	sellerRepository := sellerRepo.NewSellerRepository(db)
	subscriptionRepository := subscriptionRepo.NewGormSubscriptionRepository(db)

	// Initialize delivery gateway, falling back to in-memory topics without Firebase
	var deliveryGateway gateway.DeliveryGateway
	if cfg.FirebaseCredentials != "" {
		fcmClient, err := fcm.NewClient(ctx, cfg.FirebaseCredentials)
		if err != nil {
			log.Fatal("Failed to initialize FCM client:", err)
		}
		deliveryGateway = gateway.NewFCMGateway(fcmClient)
	} else {
		log.Printf("[WARN] No Firebase credentials configured, using in-memory delivery gateway")
		deliveryGateway = gateway.NewMemoryGateway()
	}

	interestResolver := resolver.NewInterestResolver(sellerRepository, cfg.InterestPrefix)
	subscriptionUc := subscriptionUsecase.NewSubscriptionUsecase(subscriptionRepository, interestResolver, deliveryGateway, cfg.ProviderTimeout)

	// Subscription events are optional
	if cfg.GoogleProjectID != "" {
		publisher, err := notification.NewPublisher(ctx, cfg.GoogleProjectID, cfg.PubSubTopic, cfg.GoogleCredentials)
		if err != nil {
			log.Printf("[ERROR] Failed to initialize event publisher: %v", err)
		} else if err := publisher.EnsureTopic(ctx); err != nil {
			log.Printf("[ERROR] Event topic unavailable, events disabled: %v", err)
			publisher.Close()
		} else {
			defer publisher.Close()
			subscriptionUc.SetEventPublisher(publisher)
		}
	} else {
		log.Printf("[WARN] GoogleProjectID not configured, subscription events disabled")
	}

	if cfg.ReconcileInterval > 0 {
		reconciler := scheduler.NewReconcileScheduler(subscriptionUc, cfg.ReconcileInterval)
		reconciler.Start()
		defer reconciler.Stop()
	}

	authUc := authUsecase.NewAuthUsecase(cfg.JWTSecret)

	// Initialize HTTP handler
	handler := api.NewHandler(
		authUc,
		subscriptionDelivery.NewSubscriptionHandler(subscriptionUc),
		sellerDelivery.NewSellerHandler(sellerRepository),
		cfg.GinMode,
	)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
