package camera

import "github.com/orrery3d/orrery/common"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPosition sets the initial world-space camera position.
//
// Parameters:
//   - x, y, z: the position components
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = [3]float32{x, y, z}
	}
}

// WithViewDirection sets the initial view direction. The vector is
// normalized internally.
//
// Parameters:
//   - x, y, z: the view direction components
//
// Returns:
//   - CameraControllerOption: functional option to set the view direction
func WithViewDirection(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		nx, ny, nz := common.Normalize3(x, y, z)
		cc.viewDirection = [3]float32{nx, ny, nz}
	}
}
