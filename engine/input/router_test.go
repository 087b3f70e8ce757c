package input

import (
	"testing"
	"time"

	"github.com/orrery3d/orrery/common"
	"github.com/orrery3d/orrery/engine/camera"
)

// recordingController captures camera calls for assertions.
type recordingController struct {
	forward  []camera.MovementDirection
	sideways []camera.MovementDirection
	vertical []camera.MovementDirection
	rotates  [][2]float32
	stamps   []time.Time
}

var _ camera.CameraController = &recordingController{}

func (rc *recordingController) Position(now time.Time) (x, y, z float32) { return }
func (rc *recordingController) SetPosition(x, y, z float32)              {}
func (rc *recordingController) ViewDirection() (x, y, z float32)         { return 0, 0, -1 }
func (rc *recordingController) SetViewDirection(x, y, z float32)         {}

func (rc *recordingController) MoveForward(now time.Time, d camera.MovementDirection) {
	rc.forward = append(rc.forward, d)
	rc.stamps = append(rc.stamps, now)
}

func (rc *recordingController) MoveSideways(now time.Time, d camera.MovementDirection) {
	rc.sideways = append(rc.sideways, d)
	rc.stamps = append(rc.stamps, now)
}

func (rc *recordingController) MoveVertical(now time.Time, d camera.MovementDirection) {
	rc.vertical = append(rc.vertical, d)
	rc.stamps = append(rc.stamps, now)
}

func (rc *recordingController) Rotate(now time.Time, dx, dy float32) {
	rc.rotates = append(rc.rotates, [2]float32{dx, dy})
	rc.stamps = append(rc.stamps, now)
}

func (rc *recordingController) Snapshot(now time.Time) [16]float32 {
	return [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}

func TestRouterKeyBindings(t *testing.T) {
	rc := &recordingController{}
	r := NewRouter(rc)

	r.KeyDown(common.KeyW)
	r.KeyUp(common.KeyW)
	r.KeyDown(common.KeyS)
	if want := []camera.MovementDirection{
		camera.MovementPositive, camera.MovementIdle, camera.MovementNegative,
	}; len(rc.forward) != 3 || rc.forward[0] != want[0] || rc.forward[1] != want[1] || rc.forward[2] != want[2] {
		t.Errorf("forward calls = %v, want %v", rc.forward, want)
	}

	r.KeyDown(common.KeyA)
	r.KeyDown(common.KeyD)
	if len(rc.sideways) != 2 || rc.sideways[0] != camera.MovementNegative || rc.sideways[1] != camera.MovementPositive {
		t.Errorf("sideways calls = %v", rc.sideways)
	}

	r.KeyDown(common.KeySpace)
	r.KeyDown(common.KeyLeftCtrl)
	if len(rc.vertical) != 2 || rc.vertical[0] != camera.MovementPositive || rc.vertical[1] != camera.MovementNegative {
		t.Errorf("vertical calls = %v", rc.vertical)
	}
}

func TestRouterIgnoresUnboundKeys(t *testing.T) {
	rc := &recordingController{}
	r := NewRouter(rc)

	r.KeyDown(common.KeyEsc)
	r.KeyDown(9999)
	if len(rc.forward)+len(rc.sideways)+len(rc.vertical) != 0 {
		t.Error("unbound keys should not reach the controller")
	}
}

func TestRouterMouseMoveOnlyRotatesWhileDragging(t *testing.T) {
	rc := &recordingController{}
	r := NewRouter(rc)

	r.MouseMove(100, 100)
	r.MouseMove(150, 120)
	if len(rc.rotates) != 0 {
		t.Fatalf("rotation without drag: %v", rc.rotates)
	}

	r.RightMouseDown()
	r.MouseMove(200, 200) // reference point only
	if len(rc.rotates) != 0 {
		t.Fatal("first move after drag start must not rotate")
	}
	r.MouseMove(205, 197)
	if len(rc.rotates) != 1 || rc.rotates[0] != [2]float32{5, -3} {
		t.Errorf("rotates = %v, want [[5 -3]]", rc.rotates)
	}

	r.RightMouseUp()
	r.MouseMove(300, 300)
	if len(rc.rotates) != 1 {
		t.Error("rotation after drag ended")
	}
}

func TestRouterDragRestartResetsReference(t *testing.T) {
	rc := &recordingController{}
	r := NewRouter(rc)

	r.RightMouseDown()
	r.MouseMove(10, 10)
	r.MouseMove(20, 10)
	r.RightMouseUp()

	// A new drag must re-establish the reference point instead of producing
	// a jump from the stale position.
	r.RightMouseDown()
	r.MouseMove(500, 500)
	if len(rc.rotates) != 1 {
		t.Errorf("rotates = %v, stale reference used across drags", rc.rotates)
	}
}

func TestRouterDragChangeCallback(t *testing.T) {
	var changes []bool
	rc := &recordingController{}
	r := NewRouter(rc, WithDragChangeCallback(func(d bool) {
		changes = append(changes, d)
	}))

	r.RightMouseDown()
	r.RightMouseDown() // duplicate press, no transition
	r.RightMouseUp()
	r.RightMouseUp() // duplicate release, no transition

	if len(changes) != 2 || changes[0] != true || changes[1] != false {
		t.Errorf("drag changes = %v, want [true false]", changes)
	}
	if r.Dragging() {
		t.Error("router still dragging after release")
	}
}

func TestRouterStampsEventsWithClock(t *testing.T) {
	fixed := time.Unix(4242, 0)
	rc := &recordingController{}
	r := NewRouter(rc, WithClock(func() time.Time { return fixed }))

	r.KeyDown(common.KeyW)
	if len(rc.stamps) != 1 || !rc.stamps[0].Equal(fixed) {
		t.Errorf("stamps = %v, want [%v]", rc.stamps, fixed)
	}
}
