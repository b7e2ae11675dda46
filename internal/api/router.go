package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adventurestreak/territory-backend-go/internal/config"
	"github.com/adventurestreak/territory-backend-go/internal/handler"
	"github.com/adventurestreak/territory-backend-go/internal/middleware"
)

// Handlers bundles everything the router wires up
type Handlers struct {
	Activities  *handler.ActivityHandler
	Territories *handler.TerritoryHandler
	Users       *handler.UserHandler
	Feed        *handler.FeedHandler
}

// SetupRouter builds the HTTP router
func SetupRouter(cfg *config.Config, gameplay config.Gameplay, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Territory Backend API is running",
		})
	})

	api := r.Group("/api/v1")
	auth := middleware.Auth(cfg.JWTSecret)
	ingestLimit := middleware.RateLimit(
		gameplay.IngestRateLimit,
		time.Duration(gameplay.IngestRateWindowSeconds)*time.Second,
	)

	activities := api.Group("/activities")
	{
		activities.POST("", auth, ingestLimit, h.Activities.Ingest)
		activities.POST("/:id/process", auth, h.Activities.Process)
		activities.GET("/:id", h.Activities.Get)
		activities.GET("/:id/territories", h.Activities.GetTerritories)
		activities.POST("/:id/reactions", auth, h.Activities.React)
		activities.GET("/:id/reactions", h.Activities.GetReactions)
	}

	territories := api.Group("/territories")
	{
		territories.GET("", h.Territories.GetCells)
		territories.GET("/lookup", h.Territories.Lookup)
		territories.GET("/:id", h.Territories.GetCell)
	}

	users := api.Group("/users")
	{
		users.PUT("/:id", auth, h.Users.Upsert)
		users.GET("/:id", h.Users.Get)
		users.GET("/:id/notifications", h.Users.Notifications)
	}

	feed := api.Group("/feed")
	{
		feed.GET("", h.Feed.List)
		feed.GET("/live", h.Feed.Live)
	}

	return r
}
