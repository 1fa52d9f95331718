package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brendimo/spinwheel-backend/api/routes"
	"github.com/brendimo/spinwheel-backend/internal/config"
	"github.com/brendimo/spinwheel-backend/internal/handlers"
	"github.com/brendimo/spinwheel-backend/internal/models"
	"github.com/brendimo/spinwheel-backend/internal/repositories"
	mongorepo "github.com/brendimo/spinwheel-backend/internal/repositories/mongodb"
	"github.com/brendimo/spinwheel-backend/internal/services"
	"github.com/brendimo/spinwheel-backend/pkg/mongodb"
	"github.com/brendimo/spinwheel-backend/pkg/promoapi"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to MongoDB
	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Initialize repositories
	var ledgerRepo repositories.LedgerRepository = mongorepo.NewLedgerRepository(db)
	var catalogRepo repositories.CatalogRepository = mongorepo.NewCatalogRepository(db)
	var adminUserRepo repositories.AdminUserRepository = mongorepo.NewAdminUserRepository(db)

	// Initialize the promo service client
	promoClient := promoapi.NewClient(
		cfg.Promo.Endpoint,
		cfg.Promo.MockAPI,
		time.Duration(cfg.Promo.FallbackTimeout)*time.Second,
	)

	// Initialize services
	catalogService := services.NewCatalogService(catalogRepo, models.Tier(cfg.Wheel.ReservedTier))
	ledgerService := services.NewLedgerService(ledgerRepo)
	selectionService := services.NewSelectionService(catalogService, cfg.Wheel)
	sessionService := services.NewSessionService(promoClient, ledgerService, selectionService, cfg.Wheel)
	authService := services.NewAuthService(adminUserRepo, cfg)

	// Seed the gift catalog on first run
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := catalogService.EnsureSeeded(seedCtx); err != nil {
		log.Fatalf("Failed to seed gift catalog: %v", err)
	}
	cancelSeed()

	// Sweep idle sessions in the background
	sweepDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sessionService.CleanupExpired()
			case <-sweepDone:
				return
			}
		}
	}()

	// Initialize handlers
	handlerDeps := routes.HandlerDependencies{
		SessionHandler: handlers.NewSessionHandler(sessionService),
		CatalogHandler: handlers.NewCatalogHandler(catalogService),
		AuthHandler:    handlers.NewAuthHandler(authService),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	// Run server in a goroutine so that it doesn't block
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	close(sweepDone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
