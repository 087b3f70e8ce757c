package common

import (
	"math"
	"testing"
)

// testFrustum builds a frustum for a camera at the origin looking down -Z
// with a 90 degree vertical field of view.
func testFrustum() Frustum {
	var proj, view, viewProj [16]float32
	Perspective(proj[:], float32(math.Pi/2), 1.0, 0.1, 100.0)
	LookTo(view[:], 0, 0, 0, 0, 0, -1, 0, 1, 0)
	Mul4(viewProj[:], proj[:], view[:])
	return ExtractFrustumFromMatrix(viewProj[:])
}

func TestFrustumIntersectsSphere(t *testing.T) {
	f := testFrustum()

	cases := []struct {
		name   string
		center [3]float32
		radius float32
		want   bool
	}{
		{"in front of camera", [3]float32{0, 0, -10}, 1, true},
		{"behind camera", [3]float32{0, 0, 50}, 1, false},
		{"beyond far plane", [3]float32{0, 0, -500}, 1, false},
		{"far off to the side", [3]float32{500, 0, -10}, 1, false},
		{"straddling the far plane", [3]float32{0, 0, -99.5}, 1, true},
		{"sphere enclosing the camera", [3]float32{0, 0, -50}, 500, true},
		{"just outside side plane but radius reaches in", [3]float32{-11, 0, -10}, 2, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.IntersectsSphere(tc.center, tc.radius); got != tc.want {
				t.Fatalf("IntersectsSphere(%v, %f) = %v, expected %v", tc.center, tc.radius, got, tc.want)
			}
		})
	}
}

func TestFrustumPlanesAreNormalized(t *testing.T) {
	f := testFrustum()
	for i, p := range f.Planes {
		length := math.Sqrt(float64(
			p.Normal[0]*p.Normal[0] + p.Normal[1]*p.Normal[1] + p.Normal[2]*p.Normal[2]))
		if math.Abs(length-1) > 1e-5 {
			t.Fatalf("plane %d normal length = %f, expected 1", i, length)
		}
	}
}
