package main

import (
	"log"

	"github.com/adventurestreak/territory-backend-go/internal/api"
	"github.com/adventurestreak/territory-backend-go/internal/config"
	"github.com/adventurestreak/territory-backend-go/internal/database"
	"github.com/adventurestreak/territory-backend-go/internal/feed"
	"github.com/adventurestreak/territory-backend-go/internal/handler"
	"github.com/adventurestreak/territory-backend-go/internal/repository"
	"github.com/adventurestreak/territory-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	gameplay, err := config.LoadGameplay(cfg.GameplayPath)
	if err != nil {
		log.Printf("[Config] Using gameplay defaults: %v", err)
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Repositories
	territoryRepo := repository.NewTerritoryRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	userRepo := repository.NewUserRepository(db)
	configRepo := repository.NewConfigRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	feedRepo := repository.NewFeedRepository(db)
	routeRepo, err := repository.NewRouteRepository(db)
	if err != nil {
		log.Fatal("Failed to initialize route repository:", err)
	}

	// Services
	hub := feed.NewHub()
	conquestSvc := service.NewConquestService(territoryRepo, configRepo, userRepo, gameplay.TerritoryExpirationDays)
	activitySvc := service.NewActivityService(activityRepo, routeRepo, userRepo, notificationRepo, reactionRepo, feedRepo, conquestSvc, hub)
	territorySvc := service.NewTerritoryService(territoryRepo)

	router := api.SetupRouter(cfg, gameplay, api.Handlers{
		Activities:  handler.NewActivityHandler(activitySvc),
		Territories: handler.NewTerritoryHandler(territorySvc),
		Users:       handler.NewUserHandler(userRepo, notificationRepo, territorySvc),
		Feed:        handler.NewFeedHandler(feedRepo, hub),
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
