package door

import (
	"github.com/zeusync/interact/internal/core/events/bus"
	"github.com/zeusync/interact/internal/core/interact"
	"github.com/zeusync/interact/internal/core/observability/log"
)

// Hinge is the rotating part of the door, pivoted at the hinge. Angles are degrees
// around the door's swing axis.
type Hinge interface {
	Angle() float64
	SetAngle(deg float64)
}

// State is the door's logical state. Open and locked together is unreachable.
type State uint8

const (
	ClosedUnlocked State = iota
	OpenUnlocked
	ClosedLocked
)

func (s State) String() string {
	switch s {
	case ClosedUnlocked:
		return "closed"
	case OpenUnlocked:
		return "open"
	case ClosedLocked:
		return "locked"
	default:
		return "unknown"
	}
}

var (
	_ interact.Interactable = (*Door)(nil)
	_ interact.Updater      = (*Door)(nil)
)

// Door is the lockable door state machine. It exclusively owns its open/locked flags
// and the in-flight swing; any new swing request replaces the current one.
type Door struct {
	interact.Base

	cfg    Config
	hinge  Hinge
	keys   interact.KeyChecker
	log    log.Log
	events interact.Emitter

	isOpen      bool
	isLocked    bool
	closedAngle float64
	anim        *Transition
	configErr   error
}

type Option func(*Door)

func WithLogger(l log.Log) Option {
	return func(d *Door) { d.log = l }
}

func WithEvents(b bus.EventBus, clock func() float64) Option {
	return func(d *Door) { d.events = interact.Emitter{Bus: b, Clock: clock} }
}

func WithHighlighter(h interact.Highlighter) Option {
	return func(d *Door) { d.Highlight = h }
}

// New captures the hinge's current angle as the closed reference and applies the
// start state immediately. A missing hinge disables the door permanently.
func New(cfg Config, hinge Hinge, keys interact.KeyChecker, opts ...Option) *Door {
	d := &Door{
		cfg:   cfg.withDefaults(),
		hinge: hinge,
		keys:  keys,
		log:   log.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.With(log.String("component", "door"), log.String("door", d.cfg.Name))
	d.events.Source = d.cfg.Name

	if hinge == nil {
		d.configErr = interact.ErrMissingHinge
		d.log.Error("door disabled", log.Error(d.configErr))
		return d
	}
	if d.cfg.Lockable && keys == nil {
		d.log.Warn("lock disabled", log.Error(interact.ErrMissingStore))
	}

	d.closedAngle = hinge.Angle()
	d.isLocked = d.cfg.StartLocked && d.cfg.Lockable
	d.isOpen = d.cfg.StartOpen && !d.isLocked
	if d.isOpen {
		hinge.SetAngle(d.openAngle())
	} else {
		hinge.SetAngle(d.closedAngle)
	}
	return d
}

func (d *Door) Name() string { return d.cfg.Name }

func (d *Door) IsOpen() bool   { return d.isOpen }
func (d *Door) IsLocked() bool { return d.isLocked }

func (d *Door) State() State {
	switch {
	case d.isLocked:
		return ClosedLocked
	case d.isOpen:
		return OpenUnlocked
	default:
		return ClosedUnlocked
	}
}

// ConfigErr returns the configuration error that disabled the door, if any.
func (d *Door) ConfigErr() error { return d.configErr }

func (d *Door) ClosedAngle() float64 { return d.closedAngle }

// TargetAngle is the angle the door is resting at or swinging towards.
func (d *Door) TargetAngle() float64 {
	if d.isOpen {
		return d.openAngle()
	}
	return d.closedAngle
}

// Transition returns the in-flight swing, or nil when at rest.
func (d *Door) Transition() *Transition { return d.anim }

func (d *Door) HintText(a interact.Agent) string {
	if d.configErr != nil {
		return ""
	}
	if d.isLocked {
		if d.hasKey(a) {
			return d.cfg.Hints.LockedHasKey
		}
		return d.cfg.Hints.LockedNoKey
	}
	if d.isOpen {
		return d.cfg.Hints.Close
	}
	return d.cfg.Hints.Open
}

func (d *Door) CanPrimary(interact.Agent) bool {
	return d.configErr == nil && !d.isLocked
}

// Primary opens or closes the door. It does nothing while locked.
func (d *Door) Primary(a interact.Agent) {
	if d.configErr != nil {
		return
	}
	if !d.CanPrimary(a) {
		d.log.Debug("open refused", log.Bool("locked", d.isLocked))
		return
	}
	d.isOpen = !d.isOpen
	d.swingTo(d.TargetAngle())
	if d.isOpen {
		d.emit(interact.EventDoorOpened, a)
	} else {
		d.emit(interact.EventDoorClosed, a)
	}
}

func (d *Door) CanSecondary(a interact.Agent) bool {
	return d.configErr == nil && d.cfg.Lockable && d.hasKey(a)
}

func (d *Door) SecondaryHint(interact.Agent) string {
	if d.isLocked {
		return d.cfg.Hints.Unlock
	}
	return d.cfg.Hints.Lock
}

// Secondary toggles the lock: Lock when unlocked, Unlock when locked.
func (d *Door) Secondary(a interact.Agent) {
	if d.isLocked {
		d.Unlock(a)
		return
	}
	d.Lock(a)
}

// Lock locks the door with the agent's key. Locking an open door starts the closing
// swing and sets the lock in the same call, so open and locked never coexist. Locking
// a locked door changes nothing.
func (d *Door) Lock(a interact.Agent) {
	if d.configErr != nil {
		return
	}
	if !d.CanSecondary(a) {
		d.log.Debug("lock refused", log.Bool("locked", d.isLocked))
		return
	}
	if d.isLocked {
		return
	}
	if d.isOpen {
		d.isOpen = false
		d.swingTo(d.closedAngle)
		d.emit(interact.EventDoorClosed, a)
	}
	d.isLocked = true
	d.emit(interact.EventDoorLocked, a)
}

// Unlock releases the lock without moving the door.
func (d *Door) Unlock(a interact.Agent) {
	if !d.CanSecondary(a) || !d.isLocked {
		return
	}
	d.isLocked = false
	d.emit(interact.EventDoorUnlocked, a)
}

// Update advances the in-flight swing by dt seconds.
func (d *Door) Update(dt float64) {
	if d.anim == nil {
		return
	}
	angle, done := d.anim.Advance(dt)
	d.hinge.SetAngle(angle)
	if done {
		d.anim = nil
	}
}

func (d *Door) openAngle() float64 {
	return d.closedAngle + d.cfg.OpenAngle*d.cfg.OpenDirection
}

// swingTo replaces any in-flight swing with one starting from the current angle.
func (d *Door) swingTo(target float64) {
	if d.anim != nil {
		d.log.Debug("swing cancelled", log.Float64("target", d.anim.To), log.Float64("progress", d.anim.Progress()))
	}
	d.anim = &Transition{
		From:     d.hinge.Angle(),
		To:       target,
		Duration: d.cfg.Duration,
		Ease:     easing(d.cfg.Ease),
	}
}

func (d *Door) hasKey(a interact.Agent) bool {
	if d.keys == nil || a == nil || d.cfg.KeyName == "" {
		return false
	}
	return d.keys.HasKey(a.ID(), d.cfg.KeyName)
}

func (d *Door) emit(eventType string, a interact.Agent) {
	if err := d.events.Emit(eventType, a, map[string]any{"state": d.State().String()}); err != nil {
		d.log.Warn("event handler failed", log.String("event", eventType), log.Error(err))
	}
}
