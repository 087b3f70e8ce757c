package solar

import (
	"github.com/orrery3d/orrery/common"
)

// Body is a fully resolved celestial body definition. Radii and distances are
// rescaled at load time (divided by 10^4) and rotation periods are converted
// from hours to days, so consumers only ever see presentation units.
//
// The tree is immutable after loading: exactly one parentless root with every
// other body reachable from it.
type Body struct {
	// Name uniquely identifies the body within a definition set.
	Name string

	// RadiusKm is the rescaled body radius.
	RadiusKm float64

	// DistanceFromParentKm is the rescaled average orbital distance. Zero for
	// the root.
	DistanceFromParentKm float64

	// OrbitalPeriodDays is the time for one revolution around the parent.
	// Zero means the body does not orbit (the root).
	OrbitalPeriodDays float64

	// RotationPeriodDays is the time for one rotation around the body's own
	// axis, converted from the definition's hours.
	RotationPeriodDays float64

	// Axis is the body's rotation axis in parent-local coordinates. Need not
	// be normalized in the definition file.
	Axis [3]float64

	// InverseNormals flags meshes whose normals must be negated when shading.
	// The sun is lit from inside, so its surface needs inward normals.
	InverseNormals bool

	// Texture holds decoded RGBA pixels ready for GPU upload.
	Texture common.TextureStagingData

	// Children are the bodies orbiting this one, in definition order.
	Children []*Body
}

// Count returns the total number of bodies in the subtree rooted at b,
// including b itself.
//
// Returns:
//   - int: the subtree size
func (b *Body) Count() int {
	n := 1
	for _, child := range b.Children {
		n += child.Count()
	}
	return n
}
