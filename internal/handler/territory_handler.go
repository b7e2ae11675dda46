package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adventurestreak/territory-backend-go/internal/service"
	"github.com/adventurestreak/territory-backend-go/pkg/response"
)

// TerritoryHandler handles HTTP requests for the territory map
type TerritoryHandler struct {
	service *service.TerritoryService
}

// NewTerritoryHandler creates a new territory handler
func NewTerritoryHandler(service *service.TerritoryService) *TerritoryHandler {
	return &TerritoryHandler{service: service}
}

// GetCells handles GET /api/v1/territories?min_lat=&max_lat=&min_lon=&max_lon=
func (h *TerritoryHandler) GetCells(c *gin.Context) {
	minLat, err1 := strconv.ParseFloat(c.Query("min_lat"), 64)
	maxLat, err2 := strconv.ParseFloat(c.Query("max_lat"), 64)
	minLon, err3 := strconv.ParseFloat(c.Query("min_lon"), 64)
	maxLon, err4 := strconv.ParseFloat(c.Query("max_lon"), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		response.BadRequest(c, "min_lat, max_lat, min_lon, max_lon are required", nil)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "2000"))

	cells, err := h.service.GetCellsInBounds(minLat, maxLat, minLon, maxLon, limit)
	if err != nil {
		response.InternalError(c, "Failed to get territories", err)
		return
	}
	response.Success(c, gin.H{"data": cells, "count": len(cells)})
}

// GetCell handles GET /api/v1/territories/:id
func (h *TerritoryHandler) GetCell(c *gin.Context) {
	cell, history, err := h.service.GetCell(c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to get territory", err)
		return
	}
	if cell == nil {
		response.NotFound(c, "Territory not found")
		return
	}
	response.Success(c, gin.H{"cell": cell, "history": history})
}

// Lookup handles GET /api/v1/territories/lookup?ids=a,b,c
func (h *TerritoryHandler) Lookup(c *gin.Context) {
	raw := c.Query("ids")
	if raw == "" {
		response.BadRequest(c, "ids is required", nil)
		return
	}
	ids := strings.Split(raw, ",")
	if len(ids) > 300 {
		response.BadRequest(c, "Too many ids (max 300)", nil)
		return
	}

	cells, err := h.service.Lookup(ids)
	if err != nil {
		response.InternalError(c, "Failed to look up territories", err)
		return
	}
	response.Success(c, gin.H{"data": cells, "count": len(cells)})
}
