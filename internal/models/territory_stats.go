package models

// TerritoryStats aggregates the per-cell interaction outcomes of a single
// resolution pass. It is derived per activity and never persisted on its own.
type TerritoryStats struct {
	NewCellsCount        int `json:"newCellsCount"`
	DefendedCellsCount   int `json:"defendedCellsCount"`
	RecapturedCellsCount int `json:"recapturedCellsCount"`
	StolenCellsCount     int `json:"stolenCellsCount"`
}

// NewlyOwned returns the number of cells that passed into the acting user's
// hands this activity: fresh conquests plus steals. Scoring and mission
// classification both use this figure as the "new cells" count, so a steal
// earns the new-cell rate exactly once.
func (s TerritoryStats) NewlyOwned() int {
	return s.NewCellsCount + s.StolenCellsCount
}

// Total returns the number of cells that produced any counted outcome.
// Skipped cells contribute nothing, so Total is at most the rasterized count.
func (s TerritoryStats) Total() int {
	return s.NewCellsCount + s.DefendedCellsCount + s.RecapturedCellsCount + s.StolenCellsCount
}
