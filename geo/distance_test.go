package geo

import (
	"math"
	"testing"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	if d := Distance(41.0082, 28.9784, 41.0082, 28.9784); d != 0.0 {
		t.Fatalf("expected 0.0 got %v", d)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	// Istanbul <-> Budapest
	ab := Distance(41.0082, 28.9784, 47.4979, 19.0402)
	ba := Distance(47.4979, 19.0402, 41.0082, 28.9784)
	if ab != ba {
		t.Fatalf("distance not symmetric: %v vs %v", ab, ba)
	}
	if ab < 1000 || ab > 1200 {
		t.Fatalf("implausible Istanbul-Budapest distance: %v km", ab)
	}
}

func TestDistanceOneDegreeOfLatitude(t *testing.T) {
	// along a meridian, one degree is R * pi/180 = 111.19 km rounded
	if d := Distance(0, 0, 1, 0); d != 111.19 {
		t.Fatalf("expected 111.19 got %v", d)
	}
}

func TestDistanceRounding(t *testing.T) {
	d := Distance(41.0082, 28.9784, 41.02, 28.99)
	scaled := d * 100
	if math.Abs(scaled-math.Round(scaled)) > 1e-6 {
		t.Fatalf("distance not rounded to 2 decimals: %v", d)
	}
}
