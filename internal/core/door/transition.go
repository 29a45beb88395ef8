package door

import "github.com/zeusync/interact/internal/core/physics"

// Transition is an in-flight swing towards To. It is advanced explicitly by the
// owning door each tick and can be dropped at any point.
type Transition struct {
	From     float64
	To       float64
	Elapsed  float64
	Duration float64
	Ease     func(float64) float64
}

// Advance moves the transition forward by dt seconds and returns the hinge angle
// to apply. done is true once Duration has elapsed; the angle is then exactly To.
func (t *Transition) Advance(dt float64) (angle float64, done bool) {
	t.Elapsed += dt
	if t.Elapsed >= t.Duration {
		return t.To, true
	}
	k := t.Elapsed / max(0.0001, t.Duration)
	if t.Ease != nil {
		k = t.Ease(k)
	}
	return physics.LerpAngle(t.From, t.To, k), false
}

// Progress is the fraction of Duration elapsed, in [0, 1].
func (t *Transition) Progress() float64 {
	if t.Duration <= 0 {
		return 1
	}
	return physics.Clamp01(t.Elapsed / t.Duration)
}

func easing(name string) func(float64) float64 {
	if name == EaseSmooth {
		return physics.SmoothStep
	}
	return nil
}
