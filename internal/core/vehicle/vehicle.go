package vehicle

import (
	"time"

	"github.com/zeusync/interact/internal/core/events/bus"
	"github.com/zeusync/interact/internal/core/interact"
	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/internal/core/physics"
)

type State uint8

const (
	Unoccupied State = iota
	Occupied
)

func (s State) String() string {
	if s == Occupied {
		return "occupied"
	}
	return "unoccupied"
}

var _ interact.Interactable = (*Vehicle)(nil)

// Vehicle is the possession state machine. The occupant is borrowed: it is set
// exactly while the vehicle is Occupied and cleared on dismount.
type Vehicle struct {
	interact.Base

	cfg       Config
	seat      Seat
	motion    Motion
	handoff   ControlHandoff
	accessory Accessory
	clock     Clock
	log       log.Log
	events    interact.Emitter

	state     State
	occupant  interact.Agent
	mountedAt float64
	refusedAt float64
	refused   bool
	configErr error
}

type Option func(*Vehicle)

func WithLogger(l log.Log) Option {
	return func(v *Vehicle) { v.log = l }
}

func WithClock(c Clock) Option {
	return func(v *Vehicle) { v.clock = c }
}

func WithEvents(b bus.EventBus) Option {
	return func(v *Vehicle) { v.events.Bus = b }
}

func WithHandoff(h ControlHandoff) Option {
	return func(v *Vehicle) { v.handoff = h }
}

func WithAccessory(a Accessory) Option {
	return func(v *Vehicle) { v.accessory = a }
}

func WithHighlighter(h interact.Highlighter) Option {
	return func(v *Vehicle) { v.Highlight = h }
}

// New builds an Unoccupied vehicle. A missing seat or motion component is logged once
// and permanently disables mounting on this instance. Without WithClock the debounce
// and must-stop windows fall back to wall time, which is logged as a warning.
func New(cfg Config, seat Seat, motion Motion, opts ...Option) *Vehicle {
	v := &Vehicle{
		cfg:    cfg.withDefaults(),
		seat:   seat,
		motion: motion,
		log:    log.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.log = v.log.With(log.String("component", "vehicle"), log.String("vehicle", v.cfg.Name))
	if v.clock == nil {
		start := time.Now()
		v.clock = func() float64 { return time.Since(start).Seconds() }
		v.log.Warn("no simulation clock, timing windows use wall time")
	}
	v.events.Source = v.cfg.Name
	v.events.Clock = v.clock

	switch {
	case seat == nil:
		v.configErr = interact.ErrMissingSeat
	case motion == nil:
		v.configErr = interact.ErrMissingMotion
	}
	if v.configErr != nil {
		v.log.Error("mount disabled", log.Error(v.configErr))
	}
	return v
}

// SetHandoff attaches the control handoff after construction, for coordinators
// that need the vehicle to exist first.
func (v *Vehicle) SetHandoff(h ControlHandoff) { v.handoff = h }

func (v *Vehicle) Name() string             { return v.cfg.Name }
func (v *Vehicle) State() State             { return v.state }
func (v *Vehicle) IsMounted() bool          { return v.state == Occupied }
func (v *Vehicle) Occupant() interact.Agent { return v.occupant }
func (v *Vehicle) MountedAt() float64       { return v.mountedAt }
func (v *Vehicle) ConfigErr() error         { return v.configErr }

// IsStopped reports whether the coupled motion component is at rest.
func (v *Vehicle) IsStopped() bool {
	if v.motion == nil {
		return true
	}
	return v.motion.CurrentPlanarSpeed() <= v.cfg.StopThreshold
}

func (v *Vehicle) HintText(a interact.Agent) string {
	if v.configErr != nil {
		return ""
	}
	if v.state == Unoccupied {
		return v.cfg.Hints.Mount
	}
	if v.IsStopped() {
		return v.cfg.Hints.Dismount
	}
	controls := v.cfg.Hints.Controls(v.accessory != nil)
	if v.refused && v.clock()-v.refusedAt <= v.cfg.MustStopHintFor {
		return v.cfg.Hints.MustStop + "\n" + controls
	}
	return controls
}

// CanPrimary is true for mounting a free vehicle and for the occupant's dismount
// attempt; a dismount blocked by motion is refused inside Primary.
func (v *Vehicle) CanPrimary(a interact.Agent) bool {
	if v.configErr != nil || a == nil {
		return false
	}
	if v.state == Unoccupied {
		return true
	}
	return v.occupant == a
}

// Primary mounts a free vehicle or attempts to dismount the occupant.
func (v *Vehicle) Primary(a interact.Agent) {
	if !v.CanPrimary(a) {
		return
	}
	if v.state == Unoccupied {
		v.mount(a)
		return
	}
	v.tryDismount(a)
}

func (v *Vehicle) CanSecondary(a interact.Agent) bool {
	return v.configErr == nil && v.accessory != nil && v.state == Occupied && v.occupant == a
}

// SecondaryHint is only shown while stopped; the moving hint already lists it.
func (v *Vehicle) SecondaryHint(interact.Agent) string {
	if !v.IsStopped() {
		return ""
	}
	return v.cfg.Hints.Lights
}

// Secondary toggles the vehicle accessory.
func (v *Vehicle) Secondary(a interact.Agent) {
	if !v.CanSecondary(a) {
		return
	}
	on := v.accessory.Toggle()
	v.emit(interact.EventVehicleAccessory, a, map[string]any{"on": on})
}

func (v *Vehicle) mount(a interact.Agent) {
	a.SetLocomotionEnabled(false)
	seat := v.seat.Pose()
	a.SetPose(physics.Pose{Position: seat.Position, Yaw: seat.Yaw})
	if v.handoff != nil {
		v.handoff.TransferControl(true)
	}
	v.motion.SetControlEnabled(true)
	if v.accessory != nil {
		v.accessory.OnMounted()
	}

	v.occupant = a
	v.mountedAt = v.clock()
	v.refused = false
	v.state = Occupied

	v.log.Info("mounted", log.String("agent", string(a.ID())))
	v.emit(interact.EventVehicleMounted, a, nil)
}

func (v *Vehicle) tryDismount(a interact.Agent) {
	now := v.clock()
	if now-v.mountedAt < v.cfg.DebounceWindow {
		v.log.Debug("dismount ignored, just mounted", log.Float64("since_mount", now-v.mountedAt))
		return
	}
	if !v.IsStopped() {
		v.refused = true
		v.refusedAt = now
		v.log.Debug("dismount refused, still moving", log.Float64("speed", v.motion.CurrentPlanarSpeed()))
		v.emit(interact.EventVehicleDismountRefused, a, map[string]any{"speed": v.motion.CurrentPlanarSpeed()})
		return
	}

	v.motion.SetControlEnabled(false)
	if v.handoff != nil {
		v.handoff.TransferControl(false)
	}
	if v.accessory != nil {
		v.accessory.OnDismounted()
	}
	seat := v.seat.Pose()
	a.SetPose(physics.Pose{
		Position: seat.Position.Add(seat.Right().Scale(v.cfg.DismountSideOffset)),
		Yaw:      a.Pose().Yaw,
	})
	a.SetLocomotionEnabled(true)

	v.occupant = nil
	v.refused = false
	v.state = Unoccupied

	v.log.Info("dismounted", log.String("agent", string(a.ID())))
	v.emit(interact.EventVehicleDismounted, a, nil)
}

func (v *Vehicle) emit(eventType string, a interact.Agent, data map[string]any) {
	if err := v.events.Emit(eventType, a, data); err != nil {
		v.log.Warn("event handler failed", log.String("event", eventType), log.Error(err))
	}
}
