package arena

import "errors"

// Construction-time violations fail fast; runtime geometry values
// (positions, angles) are clamped or normalized instead and never
// produce an error.
var (
	// ErrInvalidDimension is returned by New for a non-positive width or height.
	ErrInvalidDimension = errors.New("arena dimensions must be positive")

	// ErrInvalidRadius is returned by body constructors for a non-positive radius.
	ErrInvalidRadius = errors.New("body radius must be positive")

	// ErrInvalidRange is returned when attaching a sensor with a non-positive detection range.
	ErrInvalidRange = errors.New("sensor range must be positive")

	// ErrInvalidViewAngle is returned when attaching a sensor with a negative view half-angle.
	ErrInvalidViewAngle = errors.New("sensor view half-angle must not be negative")

	// ErrNotABody is returned by Insert for a nil body.
	ErrNotABody = errors.New("not a recognized body")

	// ErrBodyOwned is returned by Insert when the body already belongs to an arena.
	ErrBodyOwned = errors.New("body already owned by an arena")
)
