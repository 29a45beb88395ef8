package world

import (
	"github.com/zeusync/interact/internal/core/agent"
	"github.com/zeusync/interact/internal/core/interact"
	"github.com/zeusync/interact/internal/core/inventory"
	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/internal/core/physics"
	"github.com/zeusync/interact/internal/core/targeting"
	"github.com/zeusync/interact/internal/core/vehicle"
)

// DefaultReach is the targeting distance in meters when the scene sets none.
const DefaultReach = 2.2

type drive struct {
	vehicle *vehicle.Vehicle
	motor   *vehicle.Motor
	seat    vehicle.Seat
}

// Simulation advances one scene on a single logical thread. Every state machine
// and the targeting service are only touched from Step.
type Simulation struct {
	world    *World
	player   *agent.Player
	targets  *targeting.Service
	store    *inventory.Store
	cameras  *Cameras
	log      log.Log
	updaters []interact.Updater
	drives   []drive
	reach    float64
	now      float64
	ticks    uint64
}

// Step advances the scene by dt seconds: player input, vehicle motors, door swings,
// then the targeting tick, then the primary and secondary commands.
func (s *Simulation) Step(dt float64, in Input) {
	s.now += dt
	s.ticks++

	s.player.Look(in.LookYaw, in.LookPitch)
	if s.player.CanMove() && in.Move != (physics.Vec3{}) {
		pose := s.player.Pose()
		pose.Position = pose.Position.Add(toWorld(pose.Yaw, in.Move).Scale(dt))
		s.player.SetPose(pose)
	}

	for _, d := range s.drives {
		driving := d.vehicle.Occupant() == interact.Agent(s.player)
		if driving {
			d.motor.SetControls(in.Drive)
		}
		d.motor.Update(dt)
		if driving && d.seat != nil {
			s.player.SetPose(d.seat.Pose())
		}
	}
	for _, u := range s.updaters {
		u.Update(dt)
	}

	eye := s.player.Eye()
	s.targets.Tick(eye.Origin, eye.Direction, s.reach)

	if in.Primary && s.targets.TryPrimary() {
		s.log.Debug("primary", log.Uint64("tick", s.ticks))
	}
	if in.Secondary && s.targets.TrySecondary() {
		s.log.Debug("secondary", log.Uint64("tick", s.ticks))
	}
}

// Hint is the UI sink value for the current tick.
func (s *Simulation) Hint() interact.Hint { return s.targets.Hint() }

// Now is the simulation clock in seconds.
func (s *Simulation) Now() float64 { return s.now }

func (s *Simulation) Ticks() uint64               { return s.ticks }
func (s *Simulation) World() *World               { return s.world }
func (s *Simulation) Player() *agent.Player       { return s.player }
func (s *Simulation) Targets() *targeting.Service { return s.targets }
func (s *Simulation) Store() *inventory.Store     { return s.store }
func (s *Simulation) Cameras() *Cameras           { return s.cameras }
func (s *Simulation) Reach() float64              { return s.reach }
