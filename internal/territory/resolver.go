package territory

import (
	"time"

	"github.com/adventurestreak/territory-backend-go/internal/models"
)

// Outcome classifies the arbitration result for one candidate cell
type Outcome int

const (
	// OutcomeSkip means a newer claim already exists: no write, no counter
	OutcomeSkip Outcome = iota
	OutcomeConquest
	OutcomeDefense
	OutcomeSteal
	OutcomeRecapture
)

// Interaction returns the storage label for a counted outcome
func (o Outcome) Interaction() models.Interaction {
	switch o {
	case OutcomeConquest:
		return models.InteractionConquest
	case OutcomeDefense:
		return models.InteractionDefense
	case OutcomeSteal:
		return models.InteractionSteal
	case OutcomeRecapture:
		return models.InteractionRecapture
	}
	return ""
}

// Resolution is the decision for one cell: the outcome, the record to write
// (nil on skip) and its history entry (nil on skip). VictimID is set only
// on a steal.
type Resolution struct {
	CellID   string
	Outcome  Outcome
	Cell     *models.Cell
	History  *models.CellHistoryEntry
	VictimID string
}

// Resolve arbitrates one candidate cell against the stored owner record.
// existing is nil when the cell has never been claimed. The classification
// is a total function: it cannot fail on valid inputs.
//
// Precedence, evaluated in fixed order:
//  1. no record -> conquest
//  2. record written by this same activity -> conquest (idempotence guard:
//     reprocessing must never count its own cells as defended)
//  3. someone else's record, not expired, conquered at or after this
//     activity's end -> skip, a newer claim wins
//  4. expired record -> recapture for the old owner, conquest otherwise
//  5. someone else's live record -> steal
//  6. own live record -> defense
//
// Expiration compares against the activity's end time, never the wall
// clock, so backfilled or out-of-order processing stays deterministic.
func Resolve(candidate models.Cell, existing *models.Cell, userID, activityID string, endTime time.Time) Resolution {
	res := Resolution{CellID: candidate.ID}

	switch {
	case existing == nil:
		res.Outcome = OutcomeConquest

	case existing.ActivityID == activityID:
		res.Outcome = OutcomeConquest

	case existing.UserID != userID && !existing.IsExpiredAt(endTime) && !existing.LastConqueredAt.Before(endTime):
		res.Outcome = OutcomeSkip
		return res

	case existing.IsExpiredAt(endTime):
		if existing.UserID == userID {
			res.Outcome = OutcomeRecapture
		} else {
			res.Outcome = OutcomeConquest
		}

	case existing.UserID != userID:
		res.Outcome = OutcomeSteal
		res.VictimID = existing.UserID

	default:
		res.Outcome = OutcomeDefense
	}

	updated := candidate
	updated.UserID = userID
	updated.ActivityID = activityID
	updated.LastInteraction = res.Outcome.Interaction()
	res.Cell = &updated

	var previousOwner string
	if existing != nil && existing.UserID != userID {
		previousOwner = existing.UserID
	}
	res.History = &models.CellHistoryEntry{
		CellID:          candidate.ID,
		UserID:          userID,
		ActivityID:      activityID,
		Interaction:     res.Outcome.Interaction(),
		PreviousOwnerID: previousOwner,
		Timestamp:       endTime,
	}
	return res
}

// StatsAccumulator folds per-cell resolutions into the activity's
// aggregate counters and per-victim steal tally
type StatsAccumulator struct {
	Stats   models.TerritoryStats
	Victims map[string]int
}

// NewStatsAccumulator creates an empty accumulator
func NewStatsAccumulator() *StatsAccumulator {
	return &StatsAccumulator{Victims: make(map[string]int)}
}

// Add counts one resolution. Skips contribute to no counter.
func (a *StatsAccumulator) Add(res Resolution) {
	switch res.Outcome {
	case OutcomeConquest:
		a.Stats.NewCellsCount++
	case OutcomeDefense:
		a.Stats.DefendedCellsCount++
	case OutcomeRecapture:
		a.Stats.RecapturedCellsCount++
	case OutcomeSteal:
		a.Stats.StolenCellsCount++
		if res.VictimID != "" {
			a.Victims[res.VictimID]++
		}
	}
}
