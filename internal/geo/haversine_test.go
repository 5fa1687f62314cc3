package geo

import (
	"math"
	"testing"
)

func TestDistanceKmIdentity(t *testing.T) {
	points := [][2]float64{
		{47.3769, 8.5417},
		{46.2044, 6.1432},
		{0, 0},
		{-33.8688, 151.2093},
	}

	for _, p := range points {
		if got := DistanceKm(p[0], p[1], p[0], p[1]); got != 0 {
			t.Errorf("DistanceKm(%v, %v, same) = %v, want 0", p[0], p[1], got)
		}
	}
}

func TestDistanceKmSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{47.3769, 8.5417, 46.2044, 6.1432},
		{46.948, 7.4474, 47.5596, 7.5886},
		{0, 0, 1, 1},
	}

	for _, p := range pairs {
		forward := DistanceKm(p[0], p[1], p[2], p[3])
		backward := DistanceKm(p[2], p[3], p[0], p[1])
		if math.Abs(forward-backward) > 1e-9 {
			t.Errorf("DistanceKm not symmetric: %v vs %v for %v", forward, backward, p)
		}
	}
}

func TestDistanceKmKnownDistances(t *testing.T) {
	// Zürich to Genève is roughly 224 km great-circle.
	zurichGeneva := DistanceKm(47.3769, 8.5417, 46.2044, 6.1432)
	if math.Abs(zurichGeneva-224.4) > 1.0 {
		t.Errorf("Zürich-Genève distance = %v, want ~224.4", zurichGeneva)
	}

	// One degree of latitude on a 6371 km sphere.
	oneDegree := DistanceKm(0, 0, 1, 0)
	if math.Abs(oneDegree-111.195) > 0.01 {
		t.Errorf("one degree latitude = %v, want ~111.195", oneDegree)
	}
}

func TestDistanceKmNonNegative(t *testing.T) {
	if got := DistanceKm(-90, -180, 90, 180); got < 0 {
		t.Errorf("DistanceKm returned negative distance %v", got)
	}
}
