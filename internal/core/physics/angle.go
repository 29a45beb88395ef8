package physics

import "math"

// Clamp01 clamps v into [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Repeat wraps t into [0, length).
func Repeat(t, length float64) float64 {
	return t - math.Floor(t/length)*length
}

// DeltaAngle returns the shortest signed difference from current to target, in degrees,
// within (-180, 180].
func DeltaAngle(current, target float64) float64 {
	d := Repeat(target-current, 360)
	if d > 180 {
		d -= 360
	}
	return d
}

// LerpAngle interpolates from a towards b along the shortest arc. t is clamped.
func LerpAngle(a, b, t float64) float64 {
	return a + DeltaAngle(a, b)*Clamp01(t)
}

// SmoothStep eases t in and out over [0, 1].
func SmoothStep(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}
