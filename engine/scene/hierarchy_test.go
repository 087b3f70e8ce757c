package scene

import (
	"math"
	"testing"

	"github.com/gonum/floats"
	"github.com/orrery3d/orrery/common"
	"github.com/orrery3d/orrery/engine/solar"
)

const hierarchyTol = 1e-4

func upAxisBody(name string, radiusKm float64) *solar.Body {
	return &solar.Body{
		Name:               name,
		RadiusKm:           radiusKm,
		RotationPeriodDays: 1,
		Axis:               [3]float64{0, 1, 0},
	}
}

func matricesEqual(t *testing.T, got, want [16]float32, context string) {
	t.Helper()
	for i := range got {
		if !floats.EqualWithinAbs(float64(got[i]), float64(want[i]), hierarchyTol) {
			t.Fatalf("%s: element %d = %f, expected %f", context, i, got[i], want[i])
		}
	}
}

func TestHierarchyRootAtTimeZeroIsPureRadiusScale(t *testing.T) {
	root := upAxisBody("sun", 696000)
	h := NewHierarchy(root)

	if h.Len() != 1 {
		t.Fatalf("expected 1 node, got %d", h.Len())
	}
	h.UpdateTransforms(0)

	r := solar.RadiusScale(root.RadiusKm)
	var want [16]float32
	common.Scale(want[:], r, r, r)
	matricesEqual(t, h.WorldTransform(0), want, "root world transform")
}

func TestHierarchyPreOrderParentBeforeChild(t *testing.T) {
	moon := upAxisBody("moon", 1737)
	moon.DistanceFromParentKm = 38
	moon.OrbitalPeriodDays = 27
	planet := upAxisBody("planet", 6371)
	planet.DistanceFromParentKm = 14960
	planet.OrbitalPeriodDays = 365
	planet.Children = []*solar.Body{moon}
	root := upAxisBody("sun", 696000)
	root.Children = []*solar.Body{planet}

	h := NewHierarchy(root)
	if h.Len() != 3 {
		t.Fatalf("expected 3 nodes, got %d", h.Len())
	}
	names := []string{"sun", "planet", "moon"}
	for i, name := range names {
		if h.Name(i) != name {
			t.Fatalf("node %d = %q, expected %q", i, h.Name(i), name)
		}
	}
}

func TestHierarchyOrbitOffsetIncludesBothRadii(t *testing.T) {
	planet := upAxisBody("planet", 6371)
	planet.DistanceFromParentKm = 14960
	root := upAxisBody("sun", 696000)
	root.Children = []*solar.Body{planet}

	h := NewHierarchy(root)
	h.UpdateTransforms(0)

	wantX := float64(solar.DistanceScale(planet.DistanceFromParentKm) +
		solar.RadiusScale(root.RadiusKm) + solar.RadiusScale(planet.RadiusKm))

	world := h.WorldTransform(1)
	if !floats.EqualWithinAbs(float64(world[12]), wantX, hierarchyTol) {
		t.Fatalf("planet x = %f, expected %f", world[12], wantX)
	}
	if !floats.EqualWithinAbs(float64(world[13]), 0, hierarchyTol) ||
		!floats.EqualWithinAbs(float64(world[14]), 0, hierarchyTol) {
		t.Fatalf("planet should sit on the x axis at time zero, got (%f, %f, %f)",
			world[12], world[13], world[14])
	}
}

func TestHierarchyOrbitRevolutionRotatesOffsetAroundWorldUp(t *testing.T) {
	planet := upAxisBody("planet", 6371)
	planet.DistanceFromParentKm = 14960
	planet.OrbitalPeriodDays = 10
	root := upAxisBody("sun", 696000)
	root.Children = []*solar.Body{planet}

	h := NewHierarchy(root)
	elapsed := 2.5
	h.UpdateTransforms(elapsed)

	offsetX := solar.DistanceScale(planet.DistanceFromParentKm) +
		solar.RadiusScale(root.RadiusKm) + solar.RadiusScale(planet.RadiusKm)
	angle := solar.TimeScale(2 * math.Pi * elapsed / planet.OrbitalPeriodDays)
	wantX, wantY, wantZ := common.RotateVec3(offsetX, 0, 0, 0, 1, 0, angle)

	world := h.WorldTransform(1)
	got := []float64{float64(world[12]), float64(world[13]), float64(world[14])}
	want := []float64{float64(wantX), float64(wantY), float64(wantZ)}
	for i := range got {
		if !floats.EqualWithinAbs(got[i], want[i], hierarchyTol) {
			t.Fatalf("planet position = %v, expected %v", got, want)
		}
	}

	// The root has no orbital period, so its position never moves.
	rootWorld := h.WorldTransform(0)
	for _, idx := range []int{12, 13, 14} {
		if !floats.EqualWithinAbs(float64(rootWorld[idx]), 0, hierarchyTol) {
			t.Fatalf("root drifted to (%f, %f, %f)", rootWorld[12], rootWorld[13], rootWorld[14])
		}
	}
}

func TestHierarchyChildrenInheritOrbitalFrameNotSpin(t *testing.T) {
	moon := upAxisBody("moon", 1737)
	moon.DistanceFromParentKm = 38
	planet := upAxisBody("planet", 6371)
	planet.DistanceFromParentKm = 14960
	planet.RotationPeriodDays = 0.5
	root := upAxisBody("sun", 696000)
	root.Children = []*solar.Body{planet}
	planet.Children = []*solar.Body{moon}

	h := NewHierarchy(root)
	elapsed := 3.25
	h.UpdateTransforms(elapsed)
	first := h.WorldTransform(2)

	// Changing only the planet's rotation period must not move the moon:
	// spin is local to the body and never part of the inherited frame.
	planet.RotationPeriodDays = 7
	h2 := NewHierarchy(root)
	h2.UpdateTransforms(elapsed)
	matricesEqual(t, h2.WorldTransform(2), first, "moon world transform")
}

func TestHierarchyTiltKeepsSpinAxisFixed(t *testing.T) {
	root := upAxisBody("tilted", 6371)
	root.Axis = [3]float64{0.3, 1, 0.2}
	root.RotationPeriodDays = 2

	h := NewHierarchy(root)
	for _, elapsed := range []float64{0, 1.5, 42} {
		h.UpdateTransforms(elapsed)
		world := h.WorldTransform(0)

		// The body's local up must always map onto its rotation axis: spin
		// happens around the axis the tilt established.
		ox, oy, oz, _ := common.TransformVec4(world[:], 0, 1, 0, 0)
		nx, ny, nz := common.Normalize3(ox, oy, oz)
		ax, ay, az := common.Normalize3(float32(root.Axis[0]), float32(root.Axis[1]), float32(root.Axis[2]))
		if !floats.EqualWithinAbs(float64(nx), float64(ax), hierarchyTol) ||
			!floats.EqualWithinAbs(float64(ny), float64(ay), hierarchyTol) ||
			!floats.EqualWithinAbs(float64(nz), float64(az), hierarchyTol) {
			t.Fatalf("elapsed %f: spin axis drifted to (%f, %f, %f), expected (%f, %f, %f)",
				elapsed, nx, ny, nz, ax, ay, az)
		}
	}
}

func TestHierarchyUpdateIsPureFunctionOfElapsed(t *testing.T) {
	planet := upAxisBody("planet", 6371)
	planet.DistanceFromParentKm = 14960
	planet.OrbitalPeriodDays = 365
	root := upAxisBody("sun", 696000)
	root.Children = []*solar.Body{planet}

	h := NewHierarchy(root)
	h.UpdateTransforms(12.75)
	sun := h.WorldTransform(0)
	pl := h.WorldTransform(1)

	// Walking time forward and back must reproduce the exact same matrices.
	h.UpdateTransforms(99)
	h.UpdateTransforms(12.75)
	matricesEqual(t, h.WorldTransform(0), sun, "sun after revisit")
	matricesEqual(t, h.WorldTransform(1), pl, "planet after revisit")
}

func TestHierarchyInverseNormalsFlag(t *testing.T) {
	planet := upAxisBody("planet", 6371)
	root := upAxisBody("sun", 696000)
	root.InverseNormals = true
	root.Children = []*solar.Body{planet}

	h := NewHierarchy(root)
	if !h.InverseNormals(0) {
		t.Fatal("root should report inverse normals")
	}
	if h.InverseNormals(1) {
		t.Fatal("planet should not report inverse normals")
	}
}
