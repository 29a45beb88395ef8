package vehicle

import "github.com/zeusync/interact/internal/core/physics"

// Motion is the coupled motion/physics component. The state machine only reads
// speed and toggles driver control; velocity stays the motion component's own.
type Motion interface {
	CurrentPlanarSpeed() float64
	SetControlEnabled(enabled bool)
}

// ControlHandoff moves control and camera ownership between the agent and the vehicle.
// It is implemented by the possession coordination glue.
type ControlHandoff interface {
	TransferControl(toVehicle bool)
}

// Seat is the mount point, in world space.
type Seat interface {
	Pose() physics.Pose
}

// Accessory is a driver-toggled vehicle feature such as headlights.
type Accessory interface {
	OnMounted()
	OnDismounted()
	// Toggle flips the accessory and reports the new state.
	Toggle() bool
}

// Clock returns simulation time in seconds.
type Clock func() float64

// Body is the movable vehicle root driven by Motor.
type Body interface {
	Pose() physics.Pose
	SetPose(physics.Pose)
}
