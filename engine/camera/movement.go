package camera

import (
	"math"
	"time"
)

// MovementDirection selects the sign of a movement along one camera axis.
type MovementDirection int

const (
	// MovementIdle means no movement along the axis.
	MovementIdle MovementDirection = iota
	// MovementPositive moves along the positive axis direction.
	MovementPositive
	// MovementNegative moves along the negative axis direction.
	MovementNegative
)

// PositiveIf maps a key press state to a movement direction where the key
// drives the positive axis direction.
//
// Parameters:
//   - pressed: true while the key is held
//
// Returns:
//   - MovementDirection: MovementPositive while pressed, MovementIdle otherwise
func PositiveIf(pressed bool) MovementDirection {
	if pressed {
		return MovementPositive
	}
	return MovementIdle
}

// NegativeIf maps a key press state to a movement direction where the key
// drives the negative axis direction.
//
// Parameters:
//   - pressed: true while the key is held
//
// Returns:
//   - MovementDirection: MovementNegative while pressed, MovementIdle otherwise
func NegativeIf(pressed bool) MovementDirection {
	if pressed {
		return MovementNegative
	}
	return MovementIdle
}

// movementCurve maps the time a movement has been active to a travelled
// distance. The quintic curve keeps short taps precise while long holds
// accelerate hard, which is what makes both close-up inspection and crossing
// the outer system workable with the same keys.
func movementCurve(d time.Duration) float32 {
	return float32(math.Pow(d.Seconds(), 5))
}

// movement integrates one axis of camera travel over time. It is a tagged
// state: idle, or active in one direction with the timestamps of activation
// (init) and of the last materialization (last).
//
// Not safe for concurrent use; the owning controller serializes access.
type movement struct {
	direction MovementDirection
	init      time.Time
	last      time.Time
}

// set transitions the movement into the given direction, restarting the curve
// at now. Setting MovementIdle stops the movement.
func (m *movement) set(direction MovementDirection, now time.Time) {
	m.direction = direction
	m.init = now
	m.last = now
}

// take returns the distance travelled since the previous take (or since
// activation) and advances the last-materialized timestamp to now. An idle
// movement yields zero. Successive takes partition the curve exactly: their
// sum equals the curve evaluated over the whole active interval.
func (m *movement) take(now time.Time) float32 {
	if m.direction == MovementIdle {
		return 0
	}
	result := movementCurve(now.Sub(m.init)) - movementCurve(m.last.Sub(m.init))
	m.last = now
	if m.direction == MovementNegative {
		return -result
	}
	return result
}
