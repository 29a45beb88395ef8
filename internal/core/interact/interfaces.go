// Package interact defines the capability contract shared by every world object the
// player can act on through targeting, plus the agent and collaborator interfaces
// the variants depend on.
package interact

import (
	"github.com/zeusync/interact/internal/core/physics"
)

// AgentID identifies an acting agent in the possession store.
type AgentID string

// Agent is the actor performing interactions. Vehicles borrow it while mounted;
// the agent always outlives the vehicle.
type Agent interface {
	ID() AgentID
	Pose() physics.Pose
	SetPose(physics.Pose)
	// SetLocomotionEnabled toggles walking and camera-look behaviours together.
	SetLocomotionEnabled(enabled bool)
}

// Interactable is the capability contract for doors, switches, pickups and vehicles.
//
// Implementations must be pointer types: the targeting service compares focus by
// identity. Secondary is optional; variants without it report CanSecondary false and
// treat Secondary as a no-op (embed Base for that).
type Interactable interface {
	OnFocusEnter()
	OnFocusExit()

	// HintText is derived from current state on every call, never cached.
	HintText(a Agent) string

	CanPrimary(a Agent) bool
	Primary(a Agent)

	CanSecondary(a Agent) bool
	SecondaryHint(a Agent) string
	Secondary(a Agent)
}

// Updater is implemented by interactables with per-tick progress state.
type Updater interface {
	Update(dt float64)
}

// Highlighter is the external outline/emission effect toggled on focus.
type Highlighter interface {
	SetHighlighted(on bool)
}

// KeyChecker answers whether an agent holds a named key.
type KeyChecker interface {
	HasKey(agent AgentID, keyName string) bool
}

// KeyGranter records a named key for an agent.
type KeyGranter interface {
	GrantKey(agent AgentID, keyName string)
}

// Event types published on the interaction bus.
const (
	EventFocusEnter             = "focus.enter"
	EventFocusExit              = "focus.exit"
	EventDoorOpened             = "door.opened"
	EventDoorClosed             = "door.closed"
	EventDoorLocked             = "door.locked"
	EventDoorUnlocked           = "door.unlocked"
	EventSwitchToggled          = "switch.toggled"
	EventKeyPicked              = "key.picked"
	EventVehicleMounted         = "vehicle.mounted"
	EventVehicleDismounted      = "vehicle.dismounted"
	EventVehicleDismountRefused = "vehicle.dismount_refused"
	EventVehicleAccessory       = "vehicle.accessory"
	EventBayTaken               = "bay.taken"
	EventBayStored              = "bay.stored"
)
