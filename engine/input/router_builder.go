package input

import "time"

// RouterOption is a functional option for configuring a Router.
type RouterOption func(*routerImpl)

// WithDragChangeCallback sets the callback invoked whenever drag mode starts
// or stops. Typical use is capturing the cursor while dragging.
//
// Parameters:
//   - callback: function receiving the new drag state
//
// Returns:
//   - RouterOption: functional option to set the callback
func WithDragChangeCallback(callback func(dragging bool)) RouterOption {
	return func(r *routerImpl) {
		r.onDragChange = callback
	}
}

// WithClock overrides the time source used to stamp camera operations.
// Intended for tests.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - RouterOption: functional option to set the clock
func WithClock(now func() time.Time) RouterOption {
	return func(r *routerImpl) {
		r.now = now
	}
}
