package geometry

import "math"

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// NormalizeAngle wraps an angle into [0, 2Pi) by adding or subtracting
// one full turn at most once. Per-tick heading deltas are always well
// below a full turn, so a single wrap is enough; callers passing deltas
// larger than 2Pi in one call will get an out-of-range result. This is
// a known range limitation of the normalization, kept on purpose so
// oversized deltas stay visible instead of being folded away by a
// modulo.
func NormalizeAngle(a float64) float64 {
	if a < 0 {
		return a + TwoPi
	}
	if a >= TwoPi {
		return a - TwoPi
	}
	return a
}

// AngleDistance returns the absolute angular difference between two
// angles, reduced into [0, Pi].
func AngleDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > math.Pi {
		d = TwoPi - d
	}
	return d
}

// Bearing returns the absolute angle of the vector v in [0, 2Pi),
// measured counterclockwise from the positive X axis.
func Bearing(v Vector2D) float64 {
	return NormalizeAngle(math.Atan2(v.Y, v.X))
}
