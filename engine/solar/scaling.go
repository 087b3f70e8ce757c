// package solar loads celestial body definitions and provides the
// presentation-space rescaling shared by the scene hierarchy. Real solar
// system proportions put every body either too far away or too small to see,
// so radii and distances are compressed through a power-law curve and time is
// dilated so orbits are visibly animated.
package solar

import "math"

// RadiusScale maps a body radius to rendered-scene units. The square root
// compression keeps both the sun and small moons on screen at once.
//
// Parameters:
//   - radiusKm: the body radius in (already rescaled) kilometers
//
// Returns:
//   - float32: the render-space radius
func RadiusScale(radiusKm float64) float32 {
	return float32(math.Sqrt(radiusKm / 10000.0))
}

// DistanceScale maps an orbital distance to rendered-scene units using the
// same compression curve as RadiusScale.
//
// Parameters:
//   - distanceKm: the orbital distance in (already rescaled) kilometers
//
// Returns:
//   - float32: the render-space distance
func DistanceScale(distanceKm float64) float32 {
	return float32(math.Sqrt(distanceKm / 10000.0))
}

// TimeScale dilates an angular progression so orbital and rotational motion
// is visible in real time instead of taking literal days.
//
// Parameters:
//   - x: the undilated angular value
//
// Returns:
//   - float32: the dilated value
func TimeScale(x float64) float32 {
	return float32(x * 10.0)
}
