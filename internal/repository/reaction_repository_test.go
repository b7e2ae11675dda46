package repository

import (
	"testing"

	"github.com/adventurestreak/territory-backend-go/internal/models"
)

func TestReactionUpsertReplaces(t *testing.T) {
	db := newTestDB(t)
	repo := NewReactionRepository(db)

	if err := repo.Upsert(&models.Reaction{ActivityID: "act-1", UserID: "user-2", ReactionType: "fire"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	// Reacting again replaces, never duplicates
	if err := repo.Upsert(&models.Reaction{ActivityID: "act-1", UserID: "user-2", ReactionType: "clap"}); err != nil {
		t.Fatalf("re-Upsert failed: %v", err)
	}
	if err := repo.Upsert(&models.Reaction{ActivityID: "act-1", UserID: "user-3", ReactionType: "fire"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	reactions, err := repo.ListForActivity("act-1")
	if err != nil {
		t.Fatalf("ListForActivity failed: %v", err)
	}
	if len(reactions) != 2 {
		t.Fatalf("got %d reactions, want 2", len(reactions))
	}
	byUser := make(map[string]string)
	for _, reaction := range reactions {
		byUser[reaction.UserID] = reaction.ReactionType
	}
	if byUser["user-2"] != "clap" {
		t.Errorf("user-2 reaction = %q, want the replacement", byUser["user-2"])
	}
	if byUser["user-3"] != "fire" {
		t.Errorf("user-3 reaction = %q", byUser["user-3"])
	}
}

func TestReactionListEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewReactionRepository(db)

	reactions, err := repo.ListForActivity("no-such-activity")
	if err != nil {
		t.Fatalf("ListForActivity failed: %v", err)
	}
	if len(reactions) != 0 {
		t.Errorf("got %d reactions for an unknown activity, want 0", len(reactions))
	}
}
