package world

import (
	"sync"

	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/internal/core/targeting"
	"github.com/zeusync/interact/internal/core/vehicle"
)

// PlayerCamera is the camera active while the player is on foot.
const PlayerCamera = "player"

// Cameras tracks which camera currently renders the view.
type Cameras struct {
	mu     sync.RWMutex
	active string
}

func NewCameras() *Cameras { return &Cameras{active: PlayerCamera} }

func (c *Cameras) Activate(name string) {
	c.mu.Lock()
	c.active = name
	c.mu.Unlock()
}

func (c *Cameras) Active() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

var _ vehicle.ControlHandoff = (*Coordinator)(nil)

// Coordinator hands camera and targeting focus to a vehicle and back. While the
// player drives, the targeting service is pinned to the vehicle so its hint and
// actions stay available wherever the view ray points.
type Coordinator struct {
	vehicle *vehicle.Vehicle
	targets *targeting.Service
	cameras *Cameras
	camera  string
	log     log.Log
}

func NewCoordinator(v *vehicle.Vehicle, targets *targeting.Service, cameras *Cameras, l log.Log) *Coordinator {
	if l == nil {
		l = log.NewNop()
	}
	return &Coordinator{
		vehicle: v,
		targets: targets,
		cameras: cameras,
		camera:  "vehicle:" + v.Name(),
		log:     l.With(log.String("component", "coordinator"), log.String("vehicle", v.Name())),
	}
}

func (c *Coordinator) TransferControl(toVehicle bool) {
	if toVehicle {
		c.cameras.Activate(c.camera)
		c.targets.Pin(c.vehicle)
	} else {
		c.cameras.Activate(PlayerCamera)
		c.targets.Unpin(c.vehicle)
	}
	c.log.Debug("control transferred", log.Bool("to_vehicle", toVehicle), log.String("camera", c.cameras.Active()))
}
