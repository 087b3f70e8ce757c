package scene

import (
	"math"

	"github.com/orrery3d/orrery/common"
	"github.com/orrery3d/orrery/engine/solar"
)

var _ Hierarchy = &hierarchy{}

// Hierarchy flattens a celestial body tree into a pre-order node arena and
// recomputes every node's world transform from a single elapsed time. Parents
// always precede their children in the arena, so one forward pass per frame
// resolves the whole tree.
//
// Children inherit their parent's orbital frame only (revolution and orbit
// offset), never its tilt, spin, or scale.
type Hierarchy interface {
	// Len returns the number of nodes in the arena.
	Len() int
	// Name returns the body name of node i.
	Name(i int) string
	// InverseNormals reports whether node i is shaded with negated normals.
	InverseNormals(i int) bool
	// Texture returns the staging texture data of node i.
	Texture(i int) common.TextureStagingData
	// UpdateTransforms recomputes all world transforms for the given elapsed
	// time in seconds. The result is a pure function of (elapsed, tree): the
	// same elapsed time always yields the same transforms.
	UpdateTransforms(elapsedSeconds float64)
	// WorldTransform returns the column-major world matrix of node i as of
	// the last UpdateTransforms call.
	WorldTransform(i int) [16]float32
}

type hierarchyNode struct {
	name               string
	parent             int
	radiusKm           float64
	distanceKm         float64
	orbitalPeriodDays  float64
	rotationPeriodDays float64
	inverseNormals     bool
	texture            common.TextureStagingData

	// tilt aligns the world up axis with the body's rotation axis. Static
	// per node, precomputed at construction.
	tilt [16]float32

	// orbitFrame is the transform children inherit: parent frame, orbit
	// revolution, and orbit offset. Refreshed by UpdateTransforms.
	orbitFrame [16]float32

	// world is the full model matrix: orbitFrame with tilt, spin, and radius
	// scale applied on top. Refreshed by UpdateTransforms.
	world [16]float32
}

type hierarchy struct {
	nodes []hierarchyNode
}

// NewHierarchy flattens the body tree rooted at root into pre-order. The root
// occupies index 0 and every node's parent index is smaller than its own.
//
// Parameters:
//   - root: the root body of a loaded definition tree
//
// Returns:
//   - Hierarchy: the flattened arena, transforms not yet computed
func NewHierarchy(root *solar.Body) Hierarchy {
	h := &hierarchy{nodes: make([]hierarchyNode, 0, root.Count())}
	h.flatten(root, -1)
	h.UpdateTransforms(0)
	return h
}

func (h *hierarchy) flatten(body *solar.Body, parent int) {
	node := hierarchyNode{
		name:               body.Name,
		parent:             parent,
		radiusKm:           body.RadiusKm,
		distanceKm:         body.DistanceFromParentKm,
		orbitalPeriodDays:  body.OrbitalPeriodDays,
		rotationPeriodDays: body.RotationPeriodDays,
		inverseNormals:     body.InverseNormals,
		texture:            body.Texture,
	}
	axisAlignment(node.tilt[:], body.Axis)
	h.nodes = append(h.nodes, node)
	index := len(h.nodes) - 1
	for _, child := range body.Children {
		h.flatten(child, index)
	}
}

func (h *hierarchy) Len() int {
	return len(h.nodes)
}

func (h *hierarchy) Name(i int) string {
	return h.nodes[i].name
}

func (h *hierarchy) InverseNormals(i int) bool {
	return h.nodes[i].inverseNormals
}

func (h *hierarchy) Texture(i int) common.TextureStagingData {
	return h.nodes[i].texture
}

func (h *hierarchy) WorldTransform(i int) [16]float32 {
	return h.nodes[i].world
}

// UpdateTransforms walks the arena front to back. For each node:
//
//	orbitFrame = parentFrame · orbitRevolution(elapsed) · orbitOffset
//	world      = orbitFrame · tilt · spin(elapsed) · radiusScale
//
// The orbit offset runs along the frame's local X axis: the scaled distance
// from the parent, padded by both scaled radii so touching orbits stay
// visually separated. The root gets no radius padding and, with no orbital
// period, an identity revolution.
func (h *hierarchy) UpdateTransforms(elapsedSeconds float64) {
	var orbit, translate, spin, scale [16]float32
	var tmp, local [16]float32
	for i := range h.nodes {
		node := &h.nodes[i]

		if node.orbitalPeriodDays > 0 {
			angle := solar.TimeScale(2 * math.Pi * elapsedSeconds / node.orbitalPeriodDays)
			common.AxisRotation(orbit[:], 0, 1, 0, angle)
		} else {
			common.Identity(orbit[:])
		}

		offsetX := solar.DistanceScale(node.distanceKm)
		if node.parent >= 0 {
			offsetX += solar.RadiusScale(h.nodes[node.parent].radiusKm) + solar.RadiusScale(node.radiusKm)
		}
		common.Translation(translate[:], offsetX, 0, 0)

		if node.parent >= 0 {
			common.Mul4(tmp[:], h.nodes[node.parent].orbitFrame[:], orbit[:])
		} else {
			tmp = orbit
		}
		common.Mul4(node.orbitFrame[:], tmp[:], translate[:])

		if node.rotationPeriodDays != 0 {
			angle := solar.TimeScale(2 * math.Pi * elapsedSeconds / node.rotationPeriodDays)
			common.AxisRotation(spin[:], 0, 1, 0, angle)
		} else {
			common.Identity(spin[:])
		}
		r := solar.RadiusScale(node.radiusKm)
		common.Scale(scale[:], r, r, r)

		common.Mul4(tmp[:], node.tilt[:], spin[:])
		common.Mul4(local[:], tmp[:], scale[:])
		common.Mul4(node.world[:], node.orbitFrame[:], local[:])
	}
}

// axisAlignment writes the rotation that carries the world up axis onto the
// given rotation axis. A degenerate or up-parallel axis yields identity; an
// exactly opposite axis flips around X.
func axisAlignment(out []float32, axis [3]float64) {
	const epsilon = 1e-6
	nx, ny, nz := common.Normalize3(float32(axis[0]), float32(axis[1]), float32(axis[2]))
	if nx == 0 && ny == 0 && nz == 0 {
		common.Identity(out)
		return
	}
	// dot(up, axis) with up = (0, 1, 0)
	cos := float64(ny)
	switch {
	case cos >= 1-epsilon:
		common.Identity(out)
	case cos <= -1+epsilon:
		common.AxisRotation(out, 1, 0, 0, math.Pi)
	default:
		rx, ry, rz := common.Cross3(0, 1, 0, nx, ny, nz)
		rx, ry, rz = common.Normalize3(rx, ry, rz)
		common.AxisRotation(out, rx, ry, rz, float32(math.Acos(cos)))
	}
}
