package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/adventurestreak/territory-backend-go/internal/gamification"
	"github.com/adventurestreak/territory-backend-go/internal/models"
	"github.com/adventurestreak/territory-backend-go/internal/territory"
)

// ErrContextMissing is returned when no user context exists for the acting
// user. Scoring cannot proceed without it; the activity is left for retry.
var ErrContextMissing = errors.New("user context unavailable")

// TerritoryStore is the cell-ownership store the orchestrator arbitrates
// against. ApplyBatch must run each cell's read-decide-write atomically
// with respect to concurrent writers.
type TerritoryStore interface {
	ApplyBatch(ctx context.Context, candidates []models.Cell,
		decide func(candidate models.Cell, existing *models.Cell) territory.Resolution) ([]territory.Resolution, error)
}

// ConfigProvider supplies the scoring configuration snapshot
type ConfigProvider interface {
	GetXPConfig() (models.XPConfig, error)
}

// UserContextProvider supplies the per-user scoring snapshot; nil means
// the user is unknown
type UserContextProvider interface {
	GetContext(userID string) (*models.UserContext, error)
}

// ConquestService composes the territory engine: rasterizes the route,
// arbitrates ownership for every touched cell, aggregates stats, and runs
// scoring and mission classification. It performs no persistence of its
// own beyond the injected store's per-cell transactions.
type ConquestService struct {
	store      TerritoryStore
	config     ConfigProvider
	users      UserContextProvider
	rasterizer *territory.Rasterizer
}

// NewConquestService creates a conquest service with explicit dependencies
func NewConquestService(store TerritoryStore, config ConfigProvider, users UserContextProvider, expirationDays int) *ConquestService {
	return &ConquestService{
		store:      store,
		config:     config,
		users:      users,
		rasterizer: territory.NewRasterizer(expirationDays),
	}
}

// ProcessResult describes everything one territory pass produced
type ProcessResult struct {
	Cells       []models.Cell
	Resolutions []territory.Resolution
	Stats       models.TerritoryStats
	Victims     map[string]int
	Breakdown   models.XPBreakdown
	Missions    []models.Mission
	Context     models.UserContext
	NewTotalXP  int
	NewLevel    int
}

// Process runs the full pass for one activity. A store failure aborts
// before scoring: XP and missions are never computed from an incomplete
// territory pass. An empty route is valid and yields zeroed stats.
func (s *ConquestService) Process(ctx context.Context, activity models.Activity, points []models.RoutePoint) (*ProcessResult, error) {
	cfg, err := s.config.GetXPConfig()
	if err != nil {
		log.Printf("[Conquest] Using default XP config: %v", err)
		cfg = models.DefaultXPConfig()
	}

	userCtx, err := s.users.GetContext(activity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user context: %w", err)
	}
	if userCtx == nil {
		return nil, ErrContextMissing
	}

	cellMap := s.rasterizer.Rasterize(points, activity.UserID, activity.ID, activity.EndDate)
	candidates := make([]models.Cell, 0, len(cellMap))
	for _, cell := range cellMap {
		candidates = append(candidates, cell)
	}

	resolutions, err := s.store.ApplyBatch(ctx, candidates, func(candidate models.Cell, existing *models.Cell) territory.Resolution {
		return territory.Resolve(candidate, existing, activity.UserID, activity.ID, activity.EndDate)
	})
	if err != nil {
		return nil, fmt.Errorf("territory arbitration failed: %w", err)
	}

	acc := territory.NewStatsAccumulator()
	for _, res := range resolutions {
		acc.Add(res)
	}

	breakdown := gamification.ComputeXP(activity, acc.Stats, *userCtx, cfg)
	missions := gamification.ClassifyMissions(activity, acc.Stats, *userCtx, cfg)

	newTotal := userCtx.TotalXP + breakdown.Total

	return &ProcessResult{
		Cells:       candidates,
		Resolutions: resolutions,
		Stats:       acc.Stats,
		Victims:     acc.Victims,
		Breakdown:   breakdown,
		Missions:    missions,
		Context:     *userCtx,
		NewTotalXP:  newTotal,
		NewLevel:    gamification.Level(newTotal),
	}, nil
}
