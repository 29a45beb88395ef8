package props

import (
	"fmt"

	"github.com/zeusync/interact/internal/core/interact"
	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/internal/core/physics"
)

// Parkable is the vehicle object a bay takes out and stores.
type Parkable interface {
	ActiveInHierarchy() bool
	Activate()
	Deactivate()
	SetPose(p physics.Pose)
}

// SpawnPoint is where a taken vehicle reappears.
type SpawnPoint interface {
	Pose() physics.Pose
}

type BayHints struct {
	Take     string `json:"take,omitempty" yaml:"take,omitempty"`
	Store    string `json:"store,omitempty" yaml:"store,omitempty"`
	NeedsKey string `json:"needs_key,omitempty" yaml:"needs_key,omitempty"`
	Occupied string `json:"occupied,omitempty" yaml:"occupied,omitempty"`
}

// BayConfig describes a vehicle bay. An empty KeyName leaves the bay ungated.
type BayConfig struct {
	Name          string   `json:"name" yaml:"name"`
	KeyName       string   `json:"key_name,omitempty" yaml:"key_name,omitempty"`
	KeyLabel      string   `json:"key_label,omitempty" yaml:"key_label,omitempty"`
	FadeDuration  float64  `json:"fade_duration,omitempty" yaml:"fade_duration,omitempty"`
	HoldDuration  float64  `json:"hold_duration,omitempty" yaml:"hold_duration,omitempty"`
	SpawnUpOffset float64  `json:"spawn_up_offset,omitempty" yaml:"spawn_up_offset,omitempty"`
	KeepInput     bool     `json:"keep_input,omitempty" yaml:"keep_input,omitempty"`
	Hints         BayHints `json:"hints,omitempty" yaml:"hints,omitempty"`
}

func (c BayConfig) Validate() error {
	if c.FadeDuration < 0 || c.HoldDuration < 0 {
		return fmt.Errorf("bay %q: durations must not be negative", c.Name)
	}
	return nil
}

func (c BayConfig) withDefaults() BayConfig {
	if c.Name == "" {
		c.Name = "vehicle_bay"
	}
	if c.KeyLabel == "" {
		c.KeyLabel = c.KeyName
	}
	if c.FadeDuration == 0 {
		c.FadeDuration = 0.6
	}
	if c.HoldDuration == 0 {
		c.HoldDuration = 0.4
	}
	if c.SpawnUpOffset == 0 {
		c.SpawnUpOffset = 0.1
	}
	if c.Hints.Take == "" {
		c.Hints.Take = "Press [E] to take the vehicle"
	}
	if c.Hints.Store == "" {
		c.Hints.Store = "Press [E] to store the vehicle"
	}
	if c.Hints.NeedsKey == "" {
		c.Hints.NeedsKey = fmt.Sprintf("Requires [%s] to take the vehicle", c.KeyLabel)
	}
	if c.Hints.Occupied == "" {
		c.Hints.Occupied = "Get off the vehicle to store it"
	}
	return c
}

// BayPhase is the step of the take or store sequence.
type BayPhase uint8

const (
	BayIdle BayPhase = iota
	BayFadingOut
	BayHolding
	BayFadingIn
)

func (p BayPhase) String() string {
	switch p {
	case BayFadingOut:
		return "fading_out"
	case BayHolding:
		return "holding"
	case BayFadingIn:
		return "fading_in"
	default:
		return "idle"
	}
}

var (
	_ interact.Interactable = (*VehicleBay)(nil)
	_ interact.Updater      = (*VehicleBay)(nil)
)

// VehicleBay takes a parked vehicle out to its spawn point or stores it away. Each
// press runs a fade out, a hold, the swap and a fade in; presses during the sequence
// are ignored. Whether the vehicle is out is read from the vehicle object itself.
type VehicleBay struct {
	common
	cfg      BayConfig
	vehicle  Parkable
	spawn    SpawnPoint
	keys     interact.KeyChecker
	occupied func() bool

	phase     BayPhase
	elapsed   float64
	taking    bool
	actor     interact.Agent
	configErr error
}

// NewVehicleBay validates its collaborators once. A missing vehicle disables the bay;
// a missing spawn point only disables taking the vehicle out. occupied may be nil; when
// it reports true the vehicle cannot be stored.
func NewVehicleBay(cfg BayConfig, vehicle Parkable, spawn SpawnPoint, keys interact.KeyChecker, occupied func() bool, opts ...Option) *VehicleBay {
	b := &VehicleBay{cfg: cfg.withDefaults(), vehicle: vehicle, spawn: spawn, keys: keys, occupied: occupied}
	b.apply("vehicle_bay", b.cfg.Name, opts)
	switch {
	case vehicle == nil:
		b.configErr = interact.ErrMissingVehicle
		b.log.Error("bay disabled", log.Error(b.configErr))
	case b.cfg.KeyName != "" && keys == nil:
		b.configErr = interact.ErrMissingStore
		b.log.Error("bay disabled", log.Error(b.configErr))
	case spawn == nil:
		b.log.Warn("take disabled", log.Error(interact.ErrMissingSpawn))
	}
	return b
}

func (b *VehicleBay) Name() string     { return b.cfg.Name }
func (b *VehicleBay) ConfigErr() error { return b.configErr }
func (b *VehicleBay) Phase() BayPhase  { return b.phase }
func (b *VehicleBay) Busy() bool       { return b.phase != BayIdle }

// VehicleOut reports whether the vehicle is currently in the world.
func (b *VehicleBay) VehicleOut() bool {
	return b.vehicle != nil && b.vehicle.ActiveInHierarchy()
}

// Fade is the screen cover in [0, 1]: 0 when idle, 1 while holding.
func (b *VehicleBay) Fade() float64 {
	switch b.phase {
	case BayFadingOut:
		return physics.Clamp01(b.elapsed / b.cfg.FadeDuration)
	case BayHolding:
		return 1
	case BayFadingIn:
		return 1 - physics.Clamp01(b.elapsed/b.cfg.FadeDuration)
	default:
		return 0
	}
}

func (b *VehicleBay) HintText(a interact.Agent) string {
	if b.configErr != nil || b.Busy() {
		return ""
	}
	if !b.hasKey(a) {
		return b.cfg.Hints.NeedsKey
	}
	if b.VehicleOut() {
		if b.isOccupied() {
			return b.cfg.Hints.Occupied
		}
		return b.cfg.Hints.Store
	}
	if b.spawn == nil {
		return ""
	}
	return b.cfg.Hints.Take
}

func (b *VehicleBay) CanPrimary(a interact.Agent) bool {
	if b.configErr != nil || b.Busy() || a == nil || !b.hasKey(a) {
		return false
	}
	if b.VehicleOut() {
		return !b.isOccupied()
	}
	return b.spawn != nil
}

// Primary starts taking the vehicle out or storing it, depending on where it is.
func (b *VehicleBay) Primary(a interact.Agent) {
	if b.configErr != nil {
		return
	}
	if !b.CanPrimary(a) {
		b.log.Debug("bay refused", log.Bool("busy", b.Busy()), log.Bool("vehicle_out", b.VehicleOut()))
		return
	}
	b.taking = !b.VehicleOut()
	b.actor = a
	b.phase = BayFadingOut
	b.elapsed = 0
	if !b.cfg.KeepInput {
		a.SetLocomotionEnabled(false)
	}
	b.log.Debug("bay sequence started", log.Bool("taking", b.taking))
}

// Update advances the running sequence by dt seconds. Phases shorter than dt are
// completed within the same call.
func (b *VehicleBay) Update(dt float64) {
	if b.phase == BayIdle {
		return
	}
	b.elapsed += dt
	for b.phase != BayIdle {
		d := b.phaseDuration()
		if b.elapsed < d {
			return
		}
		b.elapsed -= d
		b.advance()
	}
}

func (b *VehicleBay) phaseDuration() float64 {
	if b.phase == BayHolding {
		return b.cfg.HoldDuration
	}
	return b.cfg.FadeDuration
}

func (b *VehicleBay) advance() {
	switch b.phase {
	case BayFadingOut:
		b.phase = BayHolding
	case BayHolding:
		b.swap()
		b.phase = BayFadingIn
	case BayFadingIn:
		b.finish()
	}
}

func (b *VehicleBay) swap() {
	if !b.taking {
		b.vehicle.Deactivate()
		b.log.Info("vehicle stored")
		b.emit(interact.EventBayStored, b.actor, nil)
		return
	}
	p := b.spawn.Pose()
	p.Position.Y += b.cfg.SpawnUpOffset
	b.vehicle.SetPose(p)
	b.vehicle.Activate()
	b.log.Info("vehicle taken", log.Float64("x", p.Position.X), log.Float64("z", p.Position.Z))
	b.emit(interact.EventBayTaken, b.actor, nil)
}

func (b *VehicleBay) finish() {
	if !b.cfg.KeepInput && b.actor != nil {
		b.actor.SetLocomotionEnabled(true)
	}
	b.actor = nil
	b.phase = BayIdle
	b.elapsed = 0
}

func (b *VehicleBay) isOccupied() bool {
	return b.occupied != nil && b.occupied()
}

func (b *VehicleBay) hasKey(a interact.Agent) bool {
	if b.cfg.KeyName == "" {
		return true
	}
	if b.keys == nil || a == nil {
		return false
	}
	return b.keys.HasKey(a.ID(), b.cfg.KeyName)
}
