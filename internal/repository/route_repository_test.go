package repository

import (
	"testing"
	"time"

	"github.com/adventurestreak/territory-backend-go/internal/models"
)

func makeRoute(n int) []models.RoutePoint {
	points := make([]models.RoutePoint, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, models.RoutePoint{
			Latitude:  40.0 + float64(i)*0.0001,
			Longitude: -3.7 + float64(i)*0.0001,
			Timestamp: baseEnd.Add(time.Duration(i) * time.Second),
		})
	}
	return points
}

func TestRouteSaveAndLoad(t *testing.T) {
	db := newTestDB(t)
	repo, err := NewRouteRepository(db)
	if err != nil {
		t.Fatalf("NewRouteRepository failed: %v", err)
	}

	// 1250 points spans three chunks
	route := makeRoute(1250)
	if err := repo.Save("act-1", route); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := repo.Load("act-1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != len(route) {
		t.Fatalf("loaded %d points, want %d", len(loaded), len(route))
	}
	// Order must survive the chunked round trip
	for i := range route {
		if loaded[i].Latitude != route[i].Latitude || loaded[i].Longitude != route[i].Longitude {
			t.Fatalf("point %d mismatch: %+v vs %+v", i, loaded[i], route[i])
		}
	}
}

func TestRouteSaveReplacesPrevious(t *testing.T) {
	db := newTestDB(t)
	repo, err := NewRouteRepository(db)
	if err != nil {
		t.Fatalf("NewRouteRepository failed: %v", err)
	}

	if err := repo.Save("act-1", makeRoute(600)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := repo.Save("act-1", makeRoute(10)); err != nil {
		t.Fatalf("re-Save failed: %v", err)
	}

	loaded, err := repo.Load("act-1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 10 {
		t.Errorf("loaded %d points after replace, want 10", len(loaded))
	}
}

func TestRouteLoadMissing(t *testing.T) {
	db := newTestDB(t)
	repo, err := NewRouteRepository(db)
	if err != nil {
		t.Fatalf("NewRouteRepository failed: %v", err)
	}

	loaded, err := repo.Load("no-such-activity")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("loaded %d points for a missing route, want 0", len(loaded))
	}
}
