package territory

import (
	"testing"
	"time"

	"github.com/adventurestreak/territory-backend-go/internal/models"
)

func candidateCell(id string) models.Cell {
	return models.Cell{ID: id, ExpiresAt: testEnd.Add(7 * 24 * time.Hour), LastConqueredAt: testEnd}
}

func storedCell(userID, activityID string, conqueredAt, expiresAt time.Time) *models.Cell {
	return &models.Cell{
		ID:              "10_20",
		UserID:          userID,
		ActivityID:      activityID,
		LastConqueredAt: conqueredAt,
		ExpiresAt:       expiresAt,
	}
}

func TestResolvePrecedence(t *testing.T) {
	earlier := testEnd.Add(-48 * time.Hour)
	later := testEnd.Add(2 * time.Hour)
	live := testEnd.Add(5 * 24 * time.Hour)
	expired := testEnd.Add(-time.Second)

	tests := []struct {
		name     string
		existing *models.Cell
		outcome  Outcome
		victim   string
	}{
		{"unclaimed cell", nil, OutcomeConquest, ""},
		{"own record from same activity", storedCell("user-1", "act-1", earlier, live), OutcomeConquest, ""},
		{"same activity beats every other rule", storedCell("user-2", "act-1", later, expired), OutcomeConquest, ""},
		{"newer rival claim", storedCell("user-2", "act-9", later, live), OutcomeSkip, ""},
		{"rival claim at exactly the activity end", storedCell("user-2", "act-9", testEnd, live), OutcomeSkip, ""},
		{"own expired record", storedCell("user-1", "act-0", earlier, expired), OutcomeRecapture, ""},
		{"rival expired record", storedCell("user-2", "act-9", earlier, expired), OutcomeConquest, ""},
		{"rival live record", storedCell("user-2", "act-9", earlier, live), OutcomeSteal, "user-2"},
		{"own live record", storedCell("user-1", "act-0", earlier, live), OutcomeDefense, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(candidateCell("10_20"), tt.existing, "user-1", "act-1", testEnd)
			if res.Outcome != tt.outcome {
				t.Fatalf("outcome = %v, want %v", res.Outcome, tt.outcome)
			}
			if res.VictimID != tt.victim {
				t.Errorf("victim = %q, want %q", res.VictimID, tt.victim)
			}
			if tt.outcome == OutcomeSkip {
				if res.Cell != nil || res.History != nil {
					t.Errorf("skip must not produce a write or history entry")
				}
				return
			}
			if res.Cell == nil || res.History == nil {
				t.Fatalf("counted outcome missing write or history entry")
			}
			if res.Cell.UserID != "user-1" || res.Cell.ActivityID != "act-1" {
				t.Errorf("written cell stamped (%s, %s)", res.Cell.UserID, res.Cell.ActivityID)
			}
			if res.Cell.LastInteraction != tt.outcome.Interaction() {
				t.Errorf("LastInteraction = %q, want %q", res.Cell.LastInteraction, tt.outcome.Interaction())
			}
			if !res.History.Timestamp.Equal(testEnd) {
				t.Errorf("history timestamp = %v, want activity end", res.History.Timestamp)
			}
		})
	}
}

// Expiration compares against the activity's end time, not the wall clock.
// A record that has lapsed by now but was live when a backfilled activity
// ended must still count as a defense or steal, never a recapture.
func TestResolveBackfilledActivity(t *testing.T) {
	oldEnd := time.Now().Add(-30 * 24 * time.Hour).UTC()
	expiresAt := oldEnd.Add(7 * 24 * time.Hour) // long past, but after oldEnd

	own := storedCell("user-1", "act-0", oldEnd.Add(-time.Hour), expiresAt)
	if res := Resolve(candidateCell("10_20"), own, "user-1", "act-1", oldEnd); res.Outcome != OutcomeDefense {
		t.Errorf("own live-at-the-time record resolved to %v, want defense", res.Outcome)
	}

	rival := storedCell("user-2", "act-9", oldEnd.Add(-time.Hour), expiresAt)
	if res := Resolve(candidateCell("10_20"), rival, "user-1", "act-1", oldEnd); res.Outcome != OutcomeSteal {
		t.Errorf("rival live-at-the-time record resolved to %v, want steal", res.Outcome)
	}
}

func TestResolveHistoryPreviousOwner(t *testing.T) {
	rival := storedCell("user-2", "act-9", testEnd.Add(-time.Hour), testEnd.Add(24*time.Hour))
	res := Resolve(candidateCell("10_20"), rival, "user-1", "act-1", testEnd)
	if res.History.PreviousOwnerID != "user-2" {
		t.Errorf("PreviousOwnerID = %q, want user-2", res.History.PreviousOwnerID)
	}

	own := storedCell("user-1", "act-0", testEnd.Add(-time.Hour), testEnd.Add(24*time.Hour))
	res = Resolve(candidateCell("10_20"), own, "user-1", "act-1", testEnd)
	if res.History.PreviousOwnerID != "" {
		t.Errorf("PreviousOwnerID = %q for a defense, want empty", res.History.PreviousOwnerID)
	}
}

func TestStatsAccumulator(t *testing.T) {
	acc := NewStatsAccumulator()
	acc.Add(Resolution{Outcome: OutcomeConquest})
	acc.Add(Resolution{Outcome: OutcomeConquest})
	acc.Add(Resolution{Outcome: OutcomeDefense})
	acc.Add(Resolution{Outcome: OutcomeSteal, VictimID: "user-2"})
	acc.Add(Resolution{Outcome: OutcomeSteal, VictimID: "user-2"})
	acc.Add(Resolution{Outcome: OutcomeSteal, VictimID: "user-3"})
	acc.Add(Resolution{Outcome: OutcomeRecapture})
	acc.Add(Resolution{Outcome: OutcomeSkip})

	s := acc.Stats
	if s.NewCellsCount != 2 || s.DefendedCellsCount != 1 || s.StolenCellsCount != 3 || s.RecapturedCellsCount != 1 {
		t.Errorf("unexpected stats: %+v", s)
	}
	if s.Total() != 7 {
		t.Errorf("Total() = %d, want 7", s.Total())
	}
	if s.NewlyOwned() != 5 {
		t.Errorf("NewlyOwned() = %d, want 5", s.NewlyOwned())
	}
	if acc.Victims["user-2"] != 2 || acc.Victims["user-3"] != 1 {
		t.Errorf("unexpected victim tally: %v", acc.Victims)
	}
}
