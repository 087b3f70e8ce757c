package scene

import (
	"time"
)

// SceneBuilderOption is a functional option for configuring a scene during
// creation.
type SceneBuilderOption func(*scene)

// WithEpoch sets the simulation start time. Elapsed time, and with it every
// orbit and spin angle, is measured from this instant. Defaults to the moment
// NewScene is called.
//
// Parameters:
//   - epoch: the simulation start time
//
// Returns:
//   - SceneBuilderOption: the option
func WithEpoch(epoch time.Time) SceneBuilderOption {
	return func(s *scene) {
		s.epoch = epoch
	}
}

// WithSphereSegments sets the latitude and longitude segment counts of the
// shared sphere mesh. Defaults to 64x128. Values below the mesh generator's
// minimums are clamped.
//
// Parameters:
//   - latSegments: number of latitude segments
//   - longSegments: number of longitude segments
//
// Returns:
//   - SceneBuilderOption: the option
func WithSphereSegments(latSegments, longSegments int) SceneBuilderOption {
	return func(s *scene) {
		s.latSegments = latSegments
		s.longSegments = longSegments
	}
}
