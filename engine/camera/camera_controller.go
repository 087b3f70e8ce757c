package camera

import "time"

// CameraController defines the interface for the free-fly camera control
// system. Movements are time based: when a movement begins its timestamp is
// remembered, and every operation first integrates the pending movements into
// the camera position before acting. Rotation is instantaneous since mouse
// deltas already encode magnitude.
//
// All methods are safe for concurrent use.
type CameraController interface {
	// Position integrates pending movements up to now and returns the
	// resulting world-space camera position.
	//
	// Parameters:
	//   - now: the current timestamp
	//
	// Returns:
	//   - x, y, z: camera position components
	Position(now time.Time) (x, y, z float32)

	// SetPosition overrides the camera's world-space position.
	//
	// Parameters:
	//   - x, y, z: the new position components
	SetPosition(x, y, z float32)

	// ViewDirection returns the camera's unit view direction.
	//
	// Returns:
	//   - x, y, z: view direction components
	ViewDirection() (x, y, z float32)

	// SetViewDirection overrides the camera's view direction. The vector is
	// normalized internally.
	//
	// Parameters:
	//   - x, y, z: the new view direction components
	SetViewDirection(x, y, z float32)

	// MoveForward starts, reverses, or stops movement along the view
	// direction. Positive is forward, negative is backward. Movement that was
	// already in progress is integrated into the position before the change
	// takes effect.
	//
	// Parameters:
	//   - now: the current timestamp
	//   - direction: the new movement direction for this axis
	MoveForward(now time.Time, direction MovementDirection)

	// MoveSideways starts, reverses, or stops strafing movement. Positive is
	// right, negative is left, relative to the current view direction.
	//
	// Parameters:
	//   - now: the current timestamp
	//   - direction: the new movement direction for this axis
	MoveSideways(now time.Time, direction MovementDirection)

	// MoveVertical starts, reverses, or stops movement along the world up
	// axis. Positive is up, negative is down, regardless of where the camera
	// is looking.
	//
	// Parameters:
	//   - now: the current timestamp
	//   - direction: the new movement direction for this axis
	MoveVertical(now time.Time, direction MovementDirection)

	// Rotate turns the view direction by the given mouse deltas. Five pixels
	// of mouse travel produce one degree of rotation. Horizontal deltas yaw
	// around the world up axis; vertical deltas pitch around the camera's
	// right axis, clamped so the view never reaches the poles.
	//
	// Parameters:
	//   - now: the current timestamp
	//   - deltaX: horizontal mouse delta in pixels
	//   - deltaY: vertical mouse delta in pixels
	Rotate(now time.Time, deltaX, deltaY float32)

	// Snapshot integrates all pending movements up to now and returns the
	// resulting right-handed view matrix (column-major). Taking a snapshot
	// twice with the same timestamp yields the same matrix.
	//
	// Parameters:
	//   - now: the current timestamp
	//
	// Returns:
	//   - [16]float32: the view matrix
	Snapshot(now time.Time) [16]float32
}
