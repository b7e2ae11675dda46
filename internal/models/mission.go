package models

// MissionCategory groups achievement entries by theme
type MissionCategory string

const (
	CategoryTerritorial    MissionCategory = "territorial"
	CategoryProgression    MissionCategory = "progression"
	CategoryPhysicalEffort MissionCategory = "physicalEffort"
)

// MissionRarity is the qualitative tier of an achievement
type MissionRarity string

const (
	RarityCommon    MissionRarity = "common"
	RarityRare      MissionRarity = "rare"
	RarityEpic      MissionRarity = "epic"
	RarityLegendary MissionRarity = "legendary"
)

// Mission is one qualitative achievement produced for an activity.
// Missions are ephemeral: classified per activity, never deduplicated
// against history.
type Mission struct {
	UserID      string          `json:"user_id"`
	Category    MissionCategory `json:"category"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Rarity      MissionRarity   `json:"rarity"`
}
