package service

import (
	"time"

	"github.com/adventurestreak/territory-backend-go/internal/models"
	"github.com/adventurestreak/territory-backend-go/internal/repository"
)

// TerritoryService handles read-side queries over the territory map
type TerritoryService struct {
	repo *repository.TerritoryRepository
}

// NewTerritoryService creates a new territory service
func NewTerritoryService(repo *repository.TerritoryRepository) *TerritoryService {
	return &TerritoryService{repo: repo}
}

// GetCellsInBounds retrieves cells inside a bounding box
func (s *TerritoryService) GetCellsInBounds(minLat, maxLat, minLon, maxLon float64, limit int) ([]models.Cell, error) {
	return s.repo.GetCellsInBounds(minLat, maxLat, minLon, maxLon, limit)
}

// GetCell retrieves one cell with its recent history
func (s *TerritoryService) GetCell(cellID string) (*models.Cell, []models.CellHistoryEntry, error) {
	cell, err := s.repo.GetCell(cellID)
	if err != nil {
		return nil, nil, err
	}
	if cell == nil {
		return nil, nil, nil
	}
	history, err := s.repo.GetCellHistory(cellID, 50)
	if err != nil {
		return nil, nil, err
	}
	return cell, history, nil
}

// Lookup retrieves cells for an explicit id set (mini-map refresh)
func (s *TerritoryService) Lookup(ids []string) (map[string]models.Cell, error) {
	return s.repo.GetCellsByIDs(ids)
}

// OwnedCount returns the user's current non-expired cell count
func (s *TerritoryService) OwnedCount(userID string) (int, error) {
	return s.repo.CountCellsByOwner(userID, time.Now().UTC())
}
