package camera

import (
	"math"
	"testing"
	"time"

	"github.com/gonum/floats"
)

const ctrlTol = 1e-5

func TestControllerDefaults(t *testing.T) {
	cc := NewCameraController()
	now := time.Unix(100, 0)

	x, y, z := cc.Position(now)
	if x != 0 || y != 0 || z != 0 {
		t.Errorf("default position = (%v,%v,%v), want origin", x, y, z)
	}
	dx, dy, dz := cc.ViewDirection()
	if dx != 0 || dy != 0 || dz != -1 {
		t.Errorf("default view direction = (%v,%v,%v), want (0,0,-1)", dx, dy, dz)
	}
}

func TestControllerForwardMovement(t *testing.T) {
	cc := NewCameraController()
	start := time.Unix(100, 0)

	cc.MoveForward(start, MovementPositive)
	x, y, z := cc.Position(start.Add(1 * time.Second))

	// One second of forward movement travels curve(1s) = 1 unit along the
	// view direction (0,0,-1).
	if !floats.EqualWithinAbs(float64(z), -1, ctrlTol) || x != 0 || y != 0 {
		t.Errorf("position = (%v,%v,%v), want (0,0,-1)", x, y, z)
	}
}

func TestControllerStopFreezesPosition(t *testing.T) {
	cc := NewCameraController()
	start := time.Unix(100, 0)

	cc.MoveForward(start, MovementPositive)
	cc.MoveForward(start.Add(1*time.Second), MovementIdle)

	// Long after the stop the position reflects exactly the active interval.
	_, _, z := cc.Position(start.Add(1 * time.Hour))
	if !floats.EqualWithinAbs(float64(z), -1, ctrlTol) {
		t.Errorf("position z = %v, want -1", z)
	}
}

func TestControllerSidewaysUsesRightAxis(t *testing.T) {
	cc := NewCameraController()
	start := time.Unix(100, 0)

	// Looking down -Z, right is +X.
	cc.MoveSideways(start, MovementPositive)
	x, y, z := cc.Position(start.Add(1 * time.Second))
	if !floats.EqualWithinAbs(float64(x), 1, ctrlTol) || y != 0 || z != 0 {
		t.Errorf("position = (%v,%v,%v), want (1,0,0)", x, y, z)
	}
}

func TestControllerVerticalIgnoresViewDirection(t *testing.T) {
	cc := NewCameraController(WithViewDirection(0, -1, 2))
	start := time.Unix(100, 0)

	// Vertical movement rides the world up axis even when looking down.
	cc.MoveVertical(start, MovementPositive)
	x, y, z := cc.Position(start.Add(1 * time.Second))
	if !floats.EqualWithinAbs(float64(y), 1, ctrlTol) || x != 0 || z != 0 {
		t.Errorf("position = (%v,%v,%v), want (0,1,0)", x, y, z)
	}
}

func TestControllerCombinedAxes(t *testing.T) {
	cc := NewCameraController()
	start := time.Unix(100, 0)

	cc.MoveForward(start, MovementPositive)
	cc.MoveSideways(start, MovementNegative)
	cc.MoveVertical(start, MovementPositive)

	x, y, z := cc.Position(start.Add(1 * time.Second))
	if !floats.EqualWithinAbs(float64(x), -1, ctrlTol) ||
		!floats.EqualWithinAbs(float64(y), 1, ctrlTol) ||
		!floats.EqualWithinAbs(float64(z), -1, ctrlTol) {
		t.Errorf("position = (%v,%v,%v), want (-1,1,-1)", x, y, z)
	}
}

func TestControllerDirectionChangeIntegratesFirst(t *testing.T) {
	cc := NewCameraController()
	start := time.Unix(100, 0)

	cc.MoveForward(start, MovementPositive)
	// Reversing at 1s locks in the first second of travel, then the new
	// movement starts its own curve from zero.
	cc.MoveForward(start.Add(1*time.Second), MovementNegative)
	_, _, z := cc.Position(start.Add(2 * time.Second))

	// -1 from the positive second, +1 back from the negative second.
	if !floats.EqualWithinAbs(float64(z), 0, ctrlTol) {
		t.Errorf("position z = %v, want 0", z)
	}
}

func TestControllerRotateYawQuarterTurn(t *testing.T) {
	cc := NewCameraController()
	now := time.Unix(100, 0)

	// 5 pixels per degree: 450 pixels is a 90 degree yaw.
	cc.Rotate(now, 450, 0)
	x, y, z := cc.ViewDirection()
	if !floats.EqualWithinAbs(float64(x), -1, ctrlTol) ||
		!floats.EqualWithinAbs(float64(y), 0, ctrlTol) ||
		!floats.EqualWithinAbs(float64(z), 0, ctrlTol) {
		t.Errorf("view after 90 deg yaw = (%v,%v,%v), want (-1,0,0)", x, y, z)
	}
}

func TestControllerRotatePreservesUnitLength(t *testing.T) {
	cc := NewCameraController()
	now := time.Unix(100, 0)

	for i := 0; i < 50; i++ {
		cc.Rotate(now, 37, -23)
	}
	x, y, z := cc.ViewDirection()
	length := math.Sqrt(float64(x*x + y*y + z*z))
	if !floats.EqualWithinAbs(length, 1, 1e-3) {
		t.Errorf("view direction length = %v, want 1", length)
	}
}

func TestControllerRotateClampsZenith(t *testing.T) {
	cc := NewCameraController()
	now := time.Unix(100, 0)

	// Pitch up far past the pole; the zenith clamp must stop short of it.
	cc.Rotate(now, 0, 1e6)
	_, y, _ := cc.ViewDirection()
	maxY := float32(math.Sin(math.Pi * 0.49))
	if y > maxY+ctrlTol {
		t.Errorf("view y = %v exceeds zenith clamp %v", y, maxY)
	}
	if y < maxY-1e-3 {
		t.Errorf("view y = %v, want close to clamp %v", y, maxY)
	}

	// And the same on the way down.
	cc.Rotate(now, 0, -2e6)
	_, y, _ = cc.ViewDirection()
	if y < -maxY-ctrlTol {
		t.Errorf("view y = %v exceeds lower zenith clamp %v", y, -maxY)
	}
}

func TestControllerRotateDoesNotMoveIdleCamera(t *testing.T) {
	cc := NewCameraController(WithPosition(3, 4, 5))
	now := time.Unix(100, 0)

	cc.Rotate(now, 123, -45)
	x, y, z := cc.Position(now)
	if x != 3 || y != 4 || z != 5 {
		t.Errorf("position = (%v,%v,%v), want (3,4,5)", x, y, z)
	}
}

func TestControllerSnapshotIdempotentAtSameInstant(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 100, -200), WithViewDirection(0, -1, 2))
	start := time.Unix(100, 0)
	cc.MoveForward(start, MovementPositive)

	at := start.Add(750 * time.Millisecond)
	first := cc.Snapshot(at)
	second := cc.Snapshot(at)
	if first != second {
		t.Error("snapshots at the same instant differ")
	}
}

func TestControllerSnapshotMatchesPosition(t *testing.T) {
	cc := NewCameraController(WithPosition(1, 2, 3))
	now := time.Unix(100, 0)

	view := cc.Snapshot(now)

	// The view matrix maps the camera position to the origin.
	px, py, pz := cc.Position(now)
	x := view[0]*px + view[4]*py + view[8]*pz + view[12]
	y := view[1]*px + view[5]*py + view[9]*pz + view[13]
	z := view[2]*px + view[6]*py + view[10]*pz + view[14]
	if !floats.EqualWithinAbs(float64(x), 0, ctrlTol) ||
		!floats.EqualWithinAbs(float64(y), 0, ctrlTol) ||
		!floats.EqualWithinAbs(float64(z), 0, ctrlTol) {
		t.Errorf("camera position in view space = (%v,%v,%v), want origin", x, y, z)
	}
}

func TestControllerSetViewDirectionNormalizes(t *testing.T) {
	cc := NewCameraController()
	cc.SetViewDirection(0, -3, 6)
	x, y, z := cc.ViewDirection()
	length := math.Sqrt(float64(x*x + y*y + z*z))
	if !floats.EqualWithinAbs(length, 1, ctrlTol) {
		t.Errorf("view direction length = %v, want 1", length)
	}
}
