package spatial

import (
	"fmt"
	"math"
)

// CellSizeDegrees is the fixed grid cell side in degrees, roughly 200m at
// the equator. Cells shrink at higher latitudes; that distortion is an
// accepted simplification, as is the lack of special-casing at the poles
// and the antimeridian.
const CellSizeDegrees = 0.002

// CellIndex maps a coordinate to its grid cell index. Pure and total:
// identical coordinates always yield the same cell.
func CellIndex(lat, lon float64) (x, y int) {
	x = int(math.Floor(lon / CellSizeDegrees))
	y = int(math.Floor(lat / CellSizeDegrees))
	return x, y
}

// CellID encodes a grid index as the stable storage key "{x}_{y}"
func CellID(x, y int) string {
	return fmt.Sprintf("%d_%d", x, y)
}

// CellCenter returns the center coordinate of a grid cell
func CellCenter(x, y int) (lat, lon float64) {
	lon = (float64(x) + 0.5) * CellSizeDegrees
	lat = (float64(y) + 0.5) * CellSizeDegrees
	return lat, lon
}

// CellBoundary returns the four corners of the axis-aligned cell square
// around a center, ordered top-left, top-right, bottom-right, bottom-left.
// Corners are [lat, lon] pairs in degree space, not geodesically corrected.
func CellBoundary(centerLat, centerLon float64) [4][2]float64 {
	half := CellSizeDegrees / 2.0
	return [4][2]float64{
		{centerLat + half, centerLon - half},
		{centerLat + half, centerLon + half},
		{centerLat - half, centerLon + half},
		{centerLat - half, centerLon - half},
	}
}
