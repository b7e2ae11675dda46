package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adventurestreak/territory-backend-go/internal/feed"
	"github.com/adventurestreak/territory-backend-go/internal/repository"
	"github.com/adventurestreak/territory-backend-go/pkg/response"
)

// FeedHandler handles HTTP requests for the social feed
type FeedHandler struct {
	repo *repository.FeedRepository
	hub  *feed.Hub
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(repo *repository.FeedRepository, hub *feed.Hub) *FeedHandler {
	return &FeedHandler{repo: repo, hub: hub}
}

// List handles GET /api/v1/feed?limit=&before=<unix>
func (h *FeedHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var before time.Time
	if raw := c.Query("before"); raw != "" {
		ts, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "before must be a unix timestamp", err)
			return
		}
		before = time.Unix(ts, 0).UTC()
	}

	events, err := h.repo.List(limit, before)
	if err != nil {
		response.InternalError(c, "Failed to get feed", err)
		return
	}
	response.Success(c, gin.H{"data": events, "count": len(events)})
}

// Live handles GET /api/v1/feed/live (websocket upgrade)
func (h *FeedHandler) Live(c *gin.Context) {
	h.hub.Serve(c.Writer, c.Request)
}
