// package input routes raw window events to camera control operations.
// Timestamps are stamped the moment an event is received so that movement
// integration is unaffected by how long the frame takes to render.
package input

import (
	"sync"
	"time"

	"github.com/orrery3d/orrery/common"
	"github.com/orrery3d/orrery/engine/camera"
	"github.com/orrery3d/orrery/engine/window"
)

// Router translates keyboard and mouse events into camera controller calls.
//
// Key bindings: W/S move forward/backward, A/D strafe left/right, Space and
// left Ctrl move up/down along the world up axis. Holding the right mouse
// button enters drag mode; mouse motion rotates the view only while dragging.
type Router interface {
	// Bind registers the router's handlers on the window's input callbacks.
	//
	// Parameters:
	//   - win: the window to receive events from
	Bind(win window.Window)

	// KeyDown handles a key press event.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	KeyDown(keyCode uint32)

	// KeyUp handles a key release event.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	KeyUp(keyCode uint32)

	// RightMouseDown handles a right mouse button press, entering drag mode.
	RightMouseDown()

	// RightMouseUp handles a right mouse button release, leaving drag mode.
	RightMouseUp()

	// MouseMove handles a cursor position event. The first position after
	// entering drag mode establishes the reference point; subsequent
	// positions are turned into deltas and forwarded as rotations.
	//
	// Parameters:
	//   - x, y: the cursor position
	MouseMove(x, y float64)

	// Dragging reports whether drag mode is currently active.
	//
	// Returns:
	//   - bool: true while the right mouse button is held
	Dragging() bool
}

type routerImpl struct {
	mu *sync.Mutex

	controller camera.CameraController

	// now provides timestamps for camera operations. Injectable for tests.
	now func() time.Time

	// onDragChange is invoked on every drag mode transition, letting the
	// application capture and release the cursor.
	onDragChange func(dragging bool)

	dragging bool
	hasLast  bool
	lastX    float64
	lastY    float64
}

var _ Router = &routerImpl{}

// NewRouter creates a Router driving the given camera controller.
//
// Parameters:
//   - controller: the camera controller to drive
//   - options: functional options to configure the router
//
// Returns:
//   - Router: the newly created router
func NewRouter(controller camera.CameraController, options ...RouterOption) Router {
	r := &routerImpl{
		mu:         &sync.Mutex{},
		controller: controller,
		now:        time.Now,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *routerImpl) Bind(win window.Window) {
	win.SetKeyDownCallback(r.KeyDown)
	win.SetKeyUpCallback(r.KeyUp)
	win.SetRightMouseDownCallback(func(x, y float64) { r.RightMouseDown() })
	win.SetRightMouseUpCallback(func(x, y float64) { r.RightMouseUp() })
	win.SetMouseMoveCallback(r.MouseMove)
}

func (r *routerImpl) KeyDown(keyCode uint32) {
	r.handleKey(keyCode, true)
}

func (r *routerImpl) KeyUp(keyCode uint32) {
	r.handleKey(keyCode, false)
}

func (r *routerImpl) handleKey(keyCode uint32, pressed bool) {
	now := r.now()
	switch keyCode {
	case common.KeyW:
		r.controller.MoveForward(now, camera.PositiveIf(pressed))
	case common.KeyS:
		r.controller.MoveForward(now, camera.NegativeIf(pressed))
	case common.KeyA:
		r.controller.MoveSideways(now, camera.NegativeIf(pressed))
	case common.KeyD:
		r.controller.MoveSideways(now, camera.PositiveIf(pressed))
	case common.KeySpace:
		r.controller.MoveVertical(now, camera.PositiveIf(pressed))
	case common.KeyLeftCtrl:
		r.controller.MoveVertical(now, camera.NegativeIf(pressed))
	}
}

func (r *routerImpl) RightMouseDown() {
	r.mu.Lock()
	if r.dragging {
		r.mu.Unlock()
		return
	}
	r.dragging = true
	r.hasLast = false
	onChange := r.onDragChange
	r.mu.Unlock()

	if onChange != nil {
		onChange(true)
	}
}

func (r *routerImpl) RightMouseUp() {
	r.mu.Lock()
	if !r.dragging {
		r.mu.Unlock()
		return
	}
	r.dragging = false
	onChange := r.onDragChange
	r.mu.Unlock()

	if onChange != nil {
		onChange(false)
	}
}

func (r *routerImpl) MouseMove(x, y float64) {
	r.mu.Lock()
	if !r.dragging {
		r.mu.Unlock()
		return
	}
	if !r.hasLast {
		// First position after the drag started is only a reference point;
		// rotating on it would make the view jump.
		r.hasLast = true
		r.lastX = x
		r.lastY = y
		r.mu.Unlock()
		return
	}
	deltaX := float32(x - r.lastX)
	deltaY := float32(y - r.lastY)
	r.lastX = x
	r.lastY = y
	r.mu.Unlock()

	r.controller.Rotate(r.now(), deltaX, deltaY)
}

func (r *routerImpl) Dragging() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dragging
}
