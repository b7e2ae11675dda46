package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adventurestreak/territory-backend-go/internal/middleware"
	"github.com/adventurestreak/territory-backend-go/internal/models"
	"github.com/adventurestreak/territory-backend-go/internal/service"
	"github.com/adventurestreak/territory-backend-go/pkg/response"
)

// maxIngestBody bounds the ingest payload size (100k points fits well under this)
const maxIngestBody = 16 << 20

// ActivityHandler handles HTTP requests for activities
type ActivityHandler struct {
	service *service.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(service *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

type ingestPayload struct {
	ActivityID       string  `json:"activityId"`
	UserID           string  `json:"userId"`
	ActivityType     string  `json:"activityType"`
	DistanceMeters   float64 `json:"distanceMeters"`
	DurationSeconds  float64 `json:"durationSeconds"`
	Calories         float64 `json:"calories"`
	AverageHeartRate float64 `json:"averageHeartRate"`
	LocationLabel    string  `json:"locationLabel"`
	EndDate          string  `json:"endDate"`
	Route            []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Timestamp string  `json:"timestamp"`
	} `json:"route"`
}

// Ingest handles POST /api/v1/activities
func (h *ActivityHandler) Ingest(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxIngestBody))
	if err != nil {
		response.BadRequest(c, "Failed to read request body", err)
		return
	}

	// Schema validation first, on the decoded generic form
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		response.BadRequest(c, "Invalid JSON", err)
		return
	}
	if err := activitySchema.Validate(generic); err != nil {
		response.BadRequest(c, "Invalid activity payload", err)
		return
	}

	var payload ingestPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		response.BadRequest(c, "Invalid activity payload", err)
		return
	}

	if auth := middleware.AuthUser(c); auth != "" && auth != payload.UserID {
		response.Error(c, http.StatusForbidden, "Token subject does not match userId", nil)
		return
	}

	endDate, err := time.Parse(time.RFC3339, payload.EndDate)
	if err != nil {
		response.BadRequest(c, "Invalid endDate", err)
		return
	}

	activity := &models.Activity{
		ID:               payload.ActivityID,
		UserID:           payload.UserID,
		Type:             models.ActivityType(payload.ActivityType),
		DistanceMeters:   payload.DistanceMeters,
		DurationSeconds:  payload.DurationSeconds,
		Calories:         payload.Calories,
		AverageHeartRate: payload.AverageHeartRate,
		LocationLabel:    payload.LocationLabel,
		EndDate:          endDate.UTC(),
	}
	if !models.ValidActivityType(activity.Type) {
		response.BadRequest(c, "Unknown activity type", nil)
		return
	}

	points := make([]models.RoutePoint, 0, len(payload.Route))
	for _, p := range payload.Route {
		ts := endDate
		if p.Timestamp != "" {
			if parsed, err := time.Parse(time.RFC3339, p.Timestamp); err == nil {
				ts = parsed
			}
		}
		points = append(points, models.RoutePoint{
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			Timestamp: ts.UTC(),
		})
	}

	if err := h.service.Ingest(activity, points); err != nil {
		response.InternalError(c, "Failed to store activity", err)
		return
	}

	response.Success(c, gin.H{
		"activity_id": activity.ID,
		"status":      activity.ProcessingStatus,
		"route_count": len(points),
	})
}

// Process handles POST /api/v1/activities/:id/process
func (h *ActivityHandler) Process(c *gin.Context) {
	activityID := c.Param("id")

	result, err := h.service.Process(c.Request.Context(), activityID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActivityNotFound):
			response.NotFound(c, "Activity not found")
		case errors.Is(err, service.ErrAlreadyProcessed):
			response.Error(c, http.StatusConflict, "Activity already processed", nil)
		case errors.Is(err, service.ErrContextMissing):
			// Left pending for retry once the user profile exists
			response.Error(c, http.StatusUnprocessableEntity, "User context unavailable", err)
		default:
			response.InternalError(c, "Failed to process activity", err)
		}
		return
	}

	response.Success(c, gin.H{
		"territory_stats": result.Stats,
		"xp_breakdown":    result.Breakdown,
		"missions":        result.Missions,
		"new_total_xp":    result.NewTotalXP,
		"new_level":       result.NewLevel,
		"cell_count":      len(result.Cells),
	})
}

// Get handles GET /api/v1/activities/:id
func (h *ActivityHandler) Get(c *gin.Context) {
	activity, err := h.service.GetActivity(c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to get activity", err)
		return
	}
	if activity == nil {
		response.NotFound(c, "Activity not found")
		return
	}
	response.Success(c, activity)
}

type reactionPayload struct {
	ReactionType string `json:"reactionType"`
}

// React handles POST /api/v1/activities/:id/reactions. The authenticated
// subject is the reactor.
func (h *ActivityHandler) React(c *gin.Context) {
	var payload reactionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "Invalid reaction payload", err)
		return
	}
	if payload.ReactionType == "" || len(payload.ReactionType) > 32 {
		response.BadRequest(c, "reactionType is required (max 32 chars)", nil)
		return
	}

	reactorID := middleware.AuthUser(c)
	if reactorID == "" {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	err := h.service.React(c.Param("id"), reactorID, payload.ReactionType)
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			response.NotFound(c, "Activity not found")
			return
		}
		response.InternalError(c, "Failed to store reaction", err)
		return
	}
	response.Success(c, gin.H{"activity_id": c.Param("id"), "reaction_type": payload.ReactionType})
}

// GetReactions handles GET /api/v1/activities/:id/reactions
func (h *ActivityHandler) GetReactions(c *gin.Context) {
	reactions, err := h.service.GetReactions(c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to get reactions", err)
		return
	}
	response.Success(c, gin.H{"data": reactions, "count": len(reactions)})
}

// GetTerritories handles GET /api/v1/activities/:id/territories
func (h *ActivityHandler) GetTerritories(c *gin.Context) {
	cells, err := h.service.GetActivityTerritories(c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to get activity territories", err)
		return
	}
	response.Success(c, gin.H{"data": cells, "count": len(cells)})
}
