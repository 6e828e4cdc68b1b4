package vector

import (
	"math"
	"testing"
)

func TestCosineDistance(t *testing.T) {
	a := []float32{1, 2, 0}
	b := []float32{0, 0, 3}
	ma, mb := Magnitude(a), Magnitude(b)

	if d := CosineDistance(a, a, ma, ma); d > 1e-6 {
		t.Fatalf("CosineDistance(a,a) = %v, want ~0", d)
	}
	if d := CosineDistance(a, b, ma, mb); math.Abs(float64(d)-1) > 1e-6 {
		t.Fatalf("CosineDistance(a,b) = %v, want 1", d)
	}
	if d := CosineDistance(a, []float32{0, 0, 0}, ma, 0); d != 1 {
		t.Fatalf("CosineDistance with zero vector = %v, want 1", d)
	}
}

func TestEuclideanDistanceAndNormalize(t *testing.T) {
	if d := EuclideanDistance([]float32{0, 0}, []float32{3, 4}); math.Abs(float64(d)-5) > 1e-6 {
		t.Fatalf("EuclideanDistance = %v, want 5", d)
	}
	n := Normalize([]float32{3, 4})
	if math.Abs(float64(n[0])-0.6) > 1e-6 || math.Abs(float64(n[1])-0.8) > 1e-6 {
		t.Fatalf("Normalize(3,4) = %v, want [0.6 0.8]", n)
	}
	z := Normalize([]float32{0, 0})
	if z[0] != 0 || z[1] != 0 {
		t.Fatalf("Normalize(0,0) = %v, want zeros", z)
	}
}
