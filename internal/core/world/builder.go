package world

import (
	"fmt"

	"github.com/zeusync/interact/internal/core/agent"
	"github.com/zeusync/interact/internal/core/door"
	"github.com/zeusync/interact/internal/core/events/bus"
	"github.com/zeusync/interact/internal/core/interact"
	"github.com/zeusync/interact/internal/core/inventory"
	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/internal/core/physics"
	"github.com/zeusync/interact/internal/core/props"
	"github.com/zeusync/interact/internal/core/targeting"
	"github.com/zeusync/interact/internal/core/vehicle"
)

// Builder is what factories get to wire an interactable into the scene.
type Builder struct {
	World   *World
	Store   *inventory.Store
	Bus     bus.EventBus
	Log     log.Log
	Targets *targeting.Service
	Cameras *Cameras
	Clock   func() float64

	sim *Simulation
}

// AddUpdater schedules u for per-tick updates after the vehicle motors.
func (b *Builder) AddUpdater(u interact.Updater) {
	b.sim.updaters = append(b.sim.updaters, u)
}

// AddDrive schedules a vehicle motor and routes driver input to it while the
// player occupies v.
func (b *Builder) AddDrive(v *vehicle.Vehicle, m *vehicle.Motor, seat vehicle.Seat) {
	b.sim.drives = append(b.sim.drives, drive{vehicle: v, motor: m, seat: seat})
}

func (b *Builder) keys() interact.KeyChecker {
	if b.Store == nil {
		return nil
	}
	return b.Store
}

func (b *Builder) granter() interact.KeyGranter {
	if b.Store == nil {
		return nil
	}
	return b.Store
}

// Build assembles a runnable simulation from a validated scene.
func Build(scene *Scene, reg *Registry, store *inventory.Store, events bus.EventBus, l log.Log) (*Simulation, error) {
	if l == nil {
		l = log.NewNop()
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	l = l.With(log.String("scene", scene.Name))

	w := New(l)
	for _, spec := range scene.Objects {
		obj := NewObject(spec.Name, physics.Pose{Position: spec.Position, Yaw: spec.Yaw}, spec.Collider)
		if err := w.Add(obj, spec.Parent); err != nil {
			return nil, err
		}
		if spec.Inactive {
			obj.Deactivate()
		}
	}

	player := agent.NewPlayer(physics.Pose{Position: scene.Player.Position, Yaw: scene.Player.Yaw})
	player.Pitch = scene.Player.Pitch
	if scene.Player.EyeHeight > 0 {
		player.EyeHeight = scene.Player.EyeHeight
	}

	sim := &Simulation{
		world:   w,
		player:  player,
		store:   store,
		cameras: NewCameras(),
		log:     l.With(log.String("component", "simulation")),
		reach:   scene.Reach,
	}
	if sim.reach == 0 {
		sim.reach = DefaultReach
	}
	sim.targets = targeting.New(w, w, player,
		targeting.WithLogger(l),
		targeting.WithEvents(events, sim.Now),
	)

	b := &Builder{
		World:   w,
		Store:   store,
		Bus:     events,
		Log:     l,
		Targets: sim.targets,
		Cameras: sim.cameras,
		Clock:   sim.Now,
		sim:     sim,
	}
	for _, spec := range scene.Objects {
		if spec.Interactable == nil {
			continue
		}
		obj, _ := w.Object(spec.Name)
		target, err := reg.New(b, obj, *spec.Interactable)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Name, err)
		}
		if err := w.Attach(spec.Name, target); err != nil {
			return nil, err
		}
	}
	l.Info("scene built", log.Int("objects", len(scene.Objects)), log.Float64("reach", sim.reach))
	return sim, nil
}

func (b *Builder) lookup(names []string) ([]*Object, error) {
	out := make([]*Object, 0, len(names))
	for _, n := range names {
		o, ok := b.World.Object(n)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownObject, n)
		}
		out = append(out, o)
	}
	return out, nil
}

type doorParams struct {
	door.Config `yaml:",inline"`
	// Hinge names the rotating object; the door object itself when empty.
	Hinge string `yaml:"hinge,omitempty"`
}

func buildDoor(b *Builder, obj *Object, spec InteractableSpec) (interact.Interactable, error) {
	var p doorParams
	if err := spec.Decode(&p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		p.Name = obj.Name()
	}
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}

	var hinge door.Hinge = obj
	if p.Hinge != "" {
		hinge = nil
		if h, ok := b.World.Object(p.Hinge); ok {
			hinge = h
		}
	}
	d := door.New(p.Config, hinge, b.keys(),
		door.WithLogger(b.Log),
		door.WithEvents(b.Bus, b.Clock),
		door.WithHighlighter(obj),
	)
	b.AddUpdater(d)
	return d, nil
}

type switchParams struct {
	props.SwitchConfig `yaml:",inline"`
	Lights             []string `yaml:"lights,omitempty"`
}

func buildLightSwitch(b *Builder, obj *Object, spec InteractableSpec) (interact.Interactable, error) {
	var p switchParams
	if err := spec.Decode(&p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		p.Name = obj.Name()
	}
	objs, err := b.lookup(p.Lights)
	if err != nil {
		return nil, err
	}
	lights := make([]props.Light, len(objs))
	for i, o := range objs {
		lights[i] = o
	}
	return props.NewLightSwitch(p.SwitchConfig, lights,
		props.WithLogger(b.Log),
		props.WithEvents(b.Bus, b.Clock),
		props.WithHighlighter(obj),
	), nil
}

func buildKeyPickup(b *Builder, obj *Object, spec InteractableSpec) (interact.Interactable, error) {
	var cfg props.PickupConfig
	if err := spec.Decode(&cfg); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = obj.Name()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return props.NewKeyPickup(cfg, b.granter(), obj,
		props.WithLogger(b.Log),
		props.WithEvents(b.Bus, b.Clock),
		props.WithHighlighter(obj),
	), nil
}

type vehicleParams struct {
	vehicle.Config `yaml:",inline"`
	// Seat names the mount point object; a vehicle without one cannot be mounted.
	Seat       string              `yaml:"seat,omitempty"`
	Motor      vehicle.MotorConfig `yaml:"motor,omitempty"`
	Headlights []string            `yaml:"headlights,omitempty"`
}

func buildVehicle(b *Builder, obj *Object, spec InteractableSpec) (interact.Interactable, error) {
	var p vehicleParams
	if err := spec.Decode(&p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		p.Name = obj.Name()
	}
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}

	var seat vehicle.Seat
	if s, ok := b.World.Object(p.Seat); ok {
		seat = s
	}
	motor := vehicle.NewMotor(p.Motor, obj, b.Log)
	opts := []vehicle.Option{
		vehicle.WithLogger(b.Log),
		vehicle.WithClock(b.Clock),
		vehicle.WithEvents(b.Bus),
		vehicle.WithHighlighter(obj),
	}
	if len(p.Headlights) > 0 {
		objs, err := b.lookup(p.Headlights)
		if err != nil {
			return nil, err
		}
		lights := make([]props.Light, len(objs))
		for i, o := range objs {
			lights[i] = o
		}
		opts = append(opts, vehicle.WithAccessory(NewHeadlight(lights...)))
	}

	v := vehicle.New(p.Config, seat, motor, opts...)
	v.SetHandoff(NewCoordinator(v, b.Targets, b.Cameras, b.Log))
	b.AddDrive(v, motor, seat)
	return v, nil
}

type bayParams struct {
	props.BayConfig `yaml:",inline"`
	// Vehicle names the parked vehicle object; Spawn names where it reappears.
	Vehicle string `yaml:"vehicle,omitempty"`
	Spawn   string `yaml:"spawn,omitempty"`
}

func buildVehicleBay(b *Builder, obj *Object, spec InteractableSpec) (interact.Interactable, error) {
	var p bayParams
	if err := spec.Decode(&p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		p.Name = obj.Name()
	}
	if err := p.BayConfig.Validate(); err != nil {
		return nil, err
	}

	var parked props.Parkable
	if o, ok := b.World.Object(p.Vehicle); ok {
		parked = o
	}
	var spawn props.SpawnPoint
	if o, ok := b.World.Object(p.Spawn); ok {
		spawn = o
	}
	// The vehicle may be declared after the bay, so it is looked up on demand.
	occupied := func() bool {
		t, ok := b.World.Interactable(p.Vehicle)
		if !ok {
			return false
		}
		v, ok := t.(*vehicle.Vehicle)
		return ok && v.IsMounted()
	}
	bay := props.NewVehicleBay(p.BayConfig, parked, spawn, b.keys(), occupied,
		props.WithLogger(b.Log),
		props.WithEvents(b.Bus, b.Clock),
		props.WithHighlighter(obj),
	)
	b.AddUpdater(bay)
	return bay, nil
}
