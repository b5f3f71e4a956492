package geo

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	// Lyon Part-Dieu to Lyon Tête d'Or is roughly 2-3 km.
	d := DistanceKm(45.7603, 4.8590, 45.7741, 4.8553)
	if d < 1 || d > 4 {
		t.Fatalf("unexpected distance: %v", d)
	}

	// Lyon to Paris ~ 390-400 km.
	d = DistanceKm(45.7640, 4.8357, 48.8566, 2.3522)
	if d < 380 || d > 410 {
		t.Fatalf("unexpected distance: %v", d)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{45.7741, 4.8553, 45.7456, 4.8563},
		{0, 0, 10, 10},
		{-33.8688, 151.2093, 51.5074, -0.1278},
	}
	for _, p := range pairs {
		ab := DistanceKm(p[0], p[1], p[2], p[3])
		ba := DistanceKm(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("distance not symmetric: %v vs %v", ab, ba)
		}
	}
}

func TestDistanceZero(t *testing.T) {
	if d := DistanceKm(45.7741, 4.8553, 45.7741, 4.8553); d != 0 {
		t.Fatalf("distance to self = %v, want 0", d)
	}
}

func TestDistanceNaNPropagates(t *testing.T) {
	if d := DistanceKm(math.NaN(), 4.8553, 45.7741, 4.8553); !math.IsNaN(d) {
		t.Fatalf("expected NaN, got %v", d)
	}
}
