package territory

import (
	"math"
	"time"

	"github.com/adventurestreak/territory-backend-go/internal/models"
	"github.com/adventurestreak/territory-backend-go/internal/spatial"
)

const (
	// Segments shorter than this are treated as stationary: only the start
	// cell is emitted, avoiding interpolation overhead and division artifacts.
	shortSegmentMeters = 10.0

	// Sampling interval along a segment. 20m is half a cell side at the
	// equator, so interpolation cannot skip over a cell.
	sampleStepMeters = 20.0
)

// Rasterizer turns an ordered GPS route into the deduplicated set of grid
// cells the path touches. Stateless apart from its configuration.
type Rasterizer struct {
	ExpirationDays int
}

// NewRasterizer creates a rasterizer stamping cells with the given
// ownership window
func NewRasterizer(expirationDays int) *Rasterizer {
	return &Rasterizer{ExpirationDays: expirationDays}
}

// Rasterize maps a route to the cells it intersects, keyed by cell id.
// Each cell is a fresh candidate record stamped with the activity's end
// time and acting user, not yet compared against any stored owner.
// An empty route yields an empty map; that is a valid case (e.g. an indoor
// activity with no GPS), not an error.
func (r *Rasterizer) Rasterize(points []models.RoutePoint, userID, activityID string, endTime time.Time) map[string]models.Cell {
	cells := make(map[string]models.Cell)
	if len(points) == 0 {
		return cells
	}

	// Seed the first point's cell so a route with zero or one segment
	// still yields at least one cell.
	r.addPoint(cells, points[0].Latitude, points[0].Longitude, userID, activityID, endTime)

	for i := 0; i < len(points)-1; i++ {
		r.rasterizeSegment(cells, points[i], points[i+1], userID, activityID, endTime)
	}
	return cells
}

// rasterizeSegment emits the cells crossed between two consecutive samples,
// interpolating linearly in degree space when the gap is wide enough to
// skip cells. Linear interpolation is not geodesic; acceptable at this
// resolution.
func (r *Rasterizer) rasterizeSegment(cells map[string]models.Cell, start, end models.RoutePoint, userID, activityID string, endTime time.Time) {
	dist := spatial.HaversineDistance(start.Latitude, start.Longitude, end.Latitude, end.Longitude)

	if dist < shortSegmentMeters {
		r.addPoint(cells, start.Latitude, start.Longitude, userID, activityID, endTime)
		return
	}

	steps := int(math.Ceil(dist / sampleStepMeters))
	for i := 0; i <= steps; i++ {
		fraction := float64(i) / float64(steps)
		lat := start.Latitude + (end.Latitude-start.Latitude)*fraction
		lon := start.Longitude + (end.Longitude-start.Longitude)*fraction
		r.addPoint(cells, lat, lon, userID, activityID, endTime)
	}
}

func (r *Rasterizer) addPoint(cells map[string]models.Cell, lat, lon float64, userID, activityID string, endTime time.Time) {
	x, y := spatial.CellIndex(lat, lon)
	id := spatial.CellID(x, y)
	if _, exists := cells[id]; exists {
		return
	}
	cells[id] = r.NewCell(x, y, userID, activityID, endTime)
}

// NewCell builds a candidate cell record for a grid index, stamped with the
// activity's end time and the configured expiration window
func (r *Rasterizer) NewCell(x, y int, userID, activityID string, endTime time.Time) models.Cell {
	centerLat, centerLon := spatial.CellCenter(x, y)
	corners := spatial.CellBoundary(centerLat, centerLon)

	boundary := make([]models.LatLng, 0, len(corners))
	for _, c := range corners {
		boundary = append(boundary, models.LatLng{Latitude: c[0], Longitude: c[1]})
	}

	return models.Cell{
		ID:              spatial.CellID(x, y),
		CenterLatitude:  centerLat,
		CenterLongitude: centerLon,
		Boundary:        boundary,
		ExpiresAt:       endTime.Add(time.Duration(r.ExpirationDays) * 24 * time.Hour),
		LastConqueredAt: endTime,
		UserID:          userID,
		ActivityID:      activityID,
	}
}
