package camera

import (
	"math"
	"sync"
	"time"

	"github.com/orrery3d/orrery/common"
)

// worldUp is the fixed world up axis. Vertical movement and yaw rotation are
// relative to it.
var worldUp = [3]float32{0, 1, 0}

// rotationMultiplier converts mouse pixels to radians: 5 pixels of movement
// results in 1 degree of rotation.
const rotationMultiplier = math.Pi / 180.0 / 5.0

// cameraControllerImpl is the single implementation of CameraController.
// It holds the camera's world position and view direction together with one
// movement integrator per axis (forward, sideways, vertical). Every public
// operation materializes pending movement into the position before acting, so
// state observed from outside is always current.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position      [3]float32
	viewDirection [3]float32

	forward  movement
	sideways movement
	vertical movement
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new free-fly camera controller. By default
// the camera sits at the origin looking down the negative Z axis.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:            &sync.Mutex{},
		position:      [3]float32{0, 0, 0},
		viewDirection: [3]float32{0, 0, -1},
	}

	for _, option := range options {
		option(cc)
	}
	return cc
}

// --- internal helpers ---

// rightAxis computes the camera's right vector, normalize(cross(view, up)).
// It is recomputed on every use since rotation changes it. Caller must hold
// the mutex.
func (cc *cameraControllerImpl) rightAxis() (x, y, z float32) {
	return common.Normalize3(common.Cross3(
		cc.viewDirection[0], cc.viewDirection[1], cc.viewDirection[2],
		worldUp[0], worldUp[1], worldUp[2],
	))
}

// materializeMovements folds each axis integrator into the position:
// forward along the view direction, sideways along the right axis, vertical
// along world up. Caller must hold the mutex.
func (cc *cameraControllerImpl) materializeMovements(now time.Time) {
	rx, ry, rz := cc.rightAxis()

	fwd := cc.forward.take(now)
	side := cc.sideways.take(now)
	vert := cc.vertical.take(now)

	cc.position[0] += cc.viewDirection[0]*fwd + rx*side + worldUp[0]*vert
	cc.position[1] += cc.viewDirection[1]*fwd + ry*side + worldUp[1]*vert
	cc.position[2] += cc.viewDirection[2]*fwd + rz*side + worldUp[2]*vert
}

// --- CameraController implementation ---

func (cc *cameraControllerImpl) Position(now time.Time) (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.materializeMovements(now)
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *cameraControllerImpl) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = [3]float32{x, y, z}
}

func (cc *cameraControllerImpl) ViewDirection() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.viewDirection[0], cc.viewDirection[1], cc.viewDirection[2]
}

func (cc *cameraControllerImpl) SetViewDirection(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	nx, ny, nz := common.Normalize3(x, y, z)
	cc.viewDirection = [3]float32{nx, ny, nz}
}

func (cc *cameraControllerImpl) MoveForward(now time.Time, direction MovementDirection) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.materializeMovements(now)
	cc.forward.set(direction, now)
}

func (cc *cameraControllerImpl) MoveSideways(now time.Time, direction MovementDirection) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.materializeMovements(now)
	cc.sideways.set(direction, now)
}

func (cc *cameraControllerImpl) MoveVertical(now time.Time, direction MovementDirection) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.materializeMovements(now)
	cc.vertical.set(direction, now)
}

func (cc *cameraControllerImpl) Rotate(now time.Time, deltaX, deltaY float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.materializeMovements(now)

	deltaX *= rotationMultiplier
	deltaY *= rotationMultiplier

	rx, ry, rz := cc.rightAxis()

	// The zenith angle needs special treatment since it cannot exceed
	// bounds: pitching past a pole would flip the right axis.
	currentZen := float32(math.Pi*0.5 - math.Acos(float64(cc.viewDirection[1])))
	newZen := currentZen + deltaY
	if newZen > math.Pi*0.49 {
		newZen = math.Pi * 0.49
	}
	if newZen < -math.Pi*0.49 {
		newZen = -math.Pi * 0.49
	}
	zenChange := newZen - currentZen

	// Pitch around the right axis first, then yaw around world up.
	vx, vy, vz := common.RotateVec3(
		cc.viewDirection[0], cc.viewDirection[1], cc.viewDirection[2],
		rx, ry, rz, zenChange,
	)
	vx, vy, vz = common.RotateVec3(vx, vy, vz, worldUp[0], worldUp[1], worldUp[2], deltaX)
	cc.viewDirection = [3]float32{vx, vy, vz}
}

func (cc *cameraControllerImpl) Snapshot(now time.Time) [16]float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.materializeMovements(now)

	var view [16]float32
	common.LookTo(view[:],
		cc.position[0], cc.position[1], cc.position[2],
		cc.viewDirection[0], cc.viewDirection[1], cc.viewDirection[2],
		worldUp[0], worldUp[1], worldUp[2],
	)
	return view
}
