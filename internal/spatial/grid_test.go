package spatial

import (
	"math"
	"testing"
)

func TestCellIndexDeterministic(t *testing.T) {
	lat, lon := 40.4168, -3.7038
	x1, y1 := CellIndex(lat, lon)
	x2, y2 := CellIndex(lat, lon)
	if x1 != x2 || y1 != y2 {
		t.Fatalf("CellIndex not deterministic: (%d,%d) vs (%d,%d)", x1, y1, x2, y2)
	}
	if CellID(x1, y1) != CellID(x2, y2) {
		t.Errorf("CellID round trip unstable")
	}
}

func TestCellIndex(t *testing.T) {
	tests := []struct {
		lat, lon float64
		x, y     int
	}{
		{0, 0, 0, 0},
		{0.001, 0.001, 0, 0},
		{0.002, 0.002, 1, 1},
		{40.4168, -3.7038, -1852, 20208},
		{-0.0001, -0.0001, -1, -1}, // flooring, not truncation
	}
	for _, tt := range tests {
		x, y := CellIndex(tt.lat, tt.lon)
		if x != tt.x || y != tt.y {
			t.Errorf("CellIndex(%v, %v) = (%d,%d), want (%d,%d)", tt.lat, tt.lon, x, y, tt.x, tt.y)
		}
	}
}

func TestCellID(t *testing.T) {
	tests := []struct {
		x, y int
		want string
	}{
		{0, 0, "0_0"},
		{-1852, 20208, "-1852_20208"},
		{12, -7, "12_-7"},
	}
	for _, tt := range tests {
		if got := CellID(tt.x, tt.y); got != tt.want {
			t.Errorf("CellID(%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCellCenterAndBoundary(t *testing.T) {
	lat, lon := CellCenter(0, 0)
	if math.Abs(lat-0.001) > 1e-12 || math.Abs(lon-0.001) > 1e-12 {
		t.Fatalf("CellCenter(0,0) = (%v,%v), want (0.001,0.001)", lat, lon)
	}

	// The center must map back to its own cell
	x, y := CellIndex(lat, lon)
	if x != 0 || y != 0 {
		t.Errorf("center does not round-trip: got (%d,%d)", x, y)
	}

	corners := CellBoundary(lat, lon)
	if corners[0][0] != lat+0.001 || corners[0][1] != lon-0.001 {
		t.Errorf("unexpected top-left corner: %v", corners[0])
	}
	if corners[2][0] != lat-0.001 || corners[2][1] != lon+0.001 {
		t.Errorf("unexpected bottom-right corner: %v", corners[2])
	}
}

func TestHaversineDistance(t *testing.T) {
	// One millidegree of latitude is ~111.2m
	d := HaversineDistance(40.0, -3.7, 40.001, -3.7)
	if d < 110 || d > 112.5 {
		t.Errorf("HaversineDistance = %v, want ~111.2", d)
	}

	if d := HaversineDistance(40.0, -3.7, 40.0, -3.7); d != 0 {
		t.Errorf("zero-length distance = %v, want 0", d)
	}
}
