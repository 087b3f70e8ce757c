package common

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

const tol = 1e-5

func matNear(t *testing.T, got, want []float32, name string) {
	t.Helper()
	for i := range want {
		if !floats.EqualWithinAbs(float64(got[i]), float64(want[i]), tol) {
			t.Errorf("%s[%d] = %v, want %v", name, i, got[i], want[i])
		}
	}
}

func TestMul4_Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i + 1)
	}

	Mul4(out[:], id[:], m[:])
	matNear(t, out[:], m[:], "I*M")

	Mul4(out[:], m[:], id[:])
	matNear(t, out[:], m[:], "M*I")
}

func TestMul4_Aliasing(t *testing.T) {
	var a, b, want [16]float32
	Translation(a[:], 1, 2, 3)
	Scale(b[:], 2, 2, 2)
	Mul4(want[:], a[:], b[:])

	// Output aliasing the left operand must produce the same result.
	got := a
	Mul4(got[:], got[:], b[:])
	matNear(t, got[:], want[:], "aliased")
}

func TestTranslationScaleComposition(t *testing.T) {
	var tr, sc, m [16]float32
	Translation(tr[:], 10, 0, 0)
	Scale(sc[:], 2, 2, 2)
	Mul4(m[:], tr[:], sc[:])

	// Point (1,0,0): scale to (2,0,0), then translate to (12,0,0).
	x, y, z, w := TransformVec4(m[:], 1, 0, 0, 1)
	if !floats.EqualWithinAbs(float64(x), 12, tol) || y != 0 || z != 0 || w != 1 {
		t.Errorf("transformed point = (%v,%v,%v,%v), want (12,0,0,1)", x, y, z, w)
	}
}

func TestAxisRotation_QuarterTurnY(t *testing.T) {
	var m [16]float32
	AxisRotation(m[:], 0, 1, 0, math.Pi/2)

	// +X rotates to -Z for a counter-clockwise turn around +Y.
	x, y, z, _ := TransformVec4(m[:], 1, 0, 0, 1)
	if !floats.EqualWithinAbs(float64(x), 0, tol) ||
		!floats.EqualWithinAbs(float64(y), 0, tol) ||
		!floats.EqualWithinAbs(float64(z), -1, tol) {
		t.Errorf("rotated +X = (%v,%v,%v), want (0,0,-1)", x, y, z)
	}
}

func TestAxisRotation_NormalizesAxisAndWrapsAngle(t *testing.T) {
	var a, b [16]float32
	AxisRotation(a[:], 0, 10, 0, 0.3)
	AxisRotation(b[:], 0, 1, 0, 0.3+2*math.Pi)
	matNear(t, a[:], b[:], "wrapped")
}

func TestLookTo_OriginLookingDownNegZ(t *testing.T) {
	var m, id [16]float32
	LookTo(m[:], 0, 0, 0, 0, 0, -1, 0, 1, 0)
	Identity(id[:])
	matNear(t, m[:], id[:], "lookTo")
}

func TestLookTo_TranslatesEyeToOrigin(t *testing.T) {
	var m [16]float32
	LookTo(m[:], 5, 3, -7, 0, 0, -1, 0, 1, 0)

	x, y, z, _ := TransformVec4(m[:], 5, 3, -7, 1)
	if !floats.EqualWithinAbs(float64(x), 0, tol) ||
		!floats.EqualWithinAbs(float64(y), 0, tol) ||
		!floats.EqualWithinAbs(float64(z), 0, tol) {
		t.Errorf("eye in view space = (%v,%v,%v), want origin", x, y, z)
	}

	// A point one unit ahead of the eye lands on -Z in view space.
	x, y, z, _ = TransformVec4(m[:], 5, 3, -8, 1)
	if !floats.EqualWithinAbs(float64(z), -1, tol) {
		t.Errorf("forward point z = %v, want -1", z)
	}
}

func TestPerspective_DepthRange(t *testing.T) {
	var p [16]float32
	Perspective(p[:], math.Pi/4, 16.0/9.0, 0.1, 100)

	// Near plane maps to depth 0, far plane to depth 1 (WebGPU convention).
	_, _, z, w := TransformVec4(p[:], 0, 0, -0.1, 1)
	if !floats.EqualWithinAbs(float64(z/w), 0, tol) {
		t.Errorf("near depth = %v, want 0", z/w)
	}
	_, _, z, w = TransformVec4(p[:], 0, 0, -100, 1)
	if !floats.EqualWithinAbs(float64(z/w), 1, tol) {
		t.Errorf("far depth = %v, want 1", z/w)
	}
}

func TestInvert4_RoundTrip(t *testing.T) {
	var m, rot, tr, inv, prod, id [16]float32
	AxisRotation(rot[:], 1, 2, 3, 0.7)
	Translation(tr[:], 4, -5, 6)
	Mul4(m[:], tr[:], rot[:])

	if !Invert4(inv[:], m[:]) {
		t.Fatal("Invert4 reported singular for an invertible matrix")
	}
	Mul4(prod[:], m[:], inv[:])
	Identity(id[:])
	matNear(t, prod[:], id[:], "M*inv(M)")
}

func TestInvert4_Singular(t *testing.T) {
	var m [16]float32 // all zeros
	var out [16]float32
	if Invert4(out[:], m[:]) {
		t.Error("Invert4 returned true for a singular matrix")
	}
}

func TestNormalFromModelView_UniformScale(t *testing.T) {
	var mv [16]float32
	Scale(mv[:], 2, 2, 2)

	var n [12]float32
	NormalFromModelView(n[:], mv[:], false)

	// inverse-transpose of 2*I is 0.5*I.
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			want := float32(0)
			if row == col {
				want = 0.5
			}
			got := n[col*4+row]
			if !floats.EqualWithinAbs(float64(got), float64(want), tol) {
				t.Errorf("n[%d][%d] = %v, want %v", col, row, got, want)
			}
		}
		if n[col*4+3] != 0 {
			t.Errorf("padding of column %d = %v, want 0", col, n[col*4+3])
		}
	}
}

func TestNormalFromModelView_Flip(t *testing.T) {
	var mv [16]float32
	AxisRotation(mv[:], 0, 1, 0, 0.4)

	var n, fn [12]float32
	NormalFromModelView(n[:], mv[:], false)
	NormalFromModelView(fn[:], mv[:], true)
	for i := range n {
		if !floats.EqualWithinAbs(float64(fn[i]), float64(-n[i]), tol) {
			t.Errorf("flipped[%d] = %v, want %v", i, fn[i], -n[i])
		}
	}
}

func TestNormalFromModelView_RotationPreservesNormals(t *testing.T) {
	var mv [16]float32
	AxisRotation(mv[:], 1, 1, 0, 1.1)

	var n [12]float32
	NormalFromModelView(n[:], mv[:], false)

	// For a pure rotation the normal matrix equals the rotation itself.
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			got := n[col*4+row]
			want := mv[col*4+row]
			if !floats.EqualWithinAbs(float64(got), float64(want), tol) {
				t.Errorf("n[%d][%d] = %v, want %v", col, row, got, want)
			}
		}
	}
}

func TestRotateVec3_MatchesMatrix(t *testing.T) {
	var m [16]float32
	AxisRotation(m[:], 0.3, -0.8, 0.5, 2.1)

	vx, vy, vz := float32(1), float32(-2), float32(0.5)
	mx, my, mz, _ := TransformVec4(m[:], vx, vy, vz, 0)
	rx, ry, rz := RotateVec3(vx, vy, vz, 0.3, -0.8, 0.5, 2.1)

	if !floats.EqualWithinAbs(float64(rx), float64(mx), tol) ||
		!floats.EqualWithinAbs(float64(ry), float64(my), tol) ||
		!floats.EqualWithinAbs(float64(rz), float64(mz), tol) {
		t.Errorf("RotateVec3 = (%v,%v,%v), matrix = (%v,%v,%v)", rx, ry, rz, mx, my, mz)
	}
}

func TestNormalize3_ZeroVector(t *testing.T) {
	x, y, z := Normalize3(0, 0, 0)
	if x != 0 || y != 0 || z != 0 {
		t.Errorf("Normalize3(0,0,0) = (%v,%v,%v), want zeros", x, y, z)
	}
}

func TestCross3_Orthogonality(t *testing.T) {
	x, y, z := Cross3(1, 0, 0, 0, 1, 0)
	if x != 0 || y != 0 || z != 1 {
		t.Errorf("X cross Y = (%v,%v,%v), want (0,0,1)", x, y, z)
	}
}

func TestSliceToBytes(t *testing.T) {
	data := []float32{1.0, 2.0}
	b := SliceToBytes(data)
	if len(b) != 8 {
		t.Errorf("len = %d, want 8", len(b))
	}
	if SliceToBytes([]float32(nil)) != nil {
		t.Error("empty slice should yield nil")
	}
}
