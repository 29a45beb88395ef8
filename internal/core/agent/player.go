package agent

import (
	"github.com/google/uuid"

	"github.com/zeusync/interact/internal/core/interact"
	"github.com/zeusync/interact/internal/core/physics"
)

// InputBehaviour is never disabled by SetLocomotionEnabled, so the player can
// still issue commands while mounted.
const InputBehaviour = "input"

// Default behaviour set of a first-person player.
var DefaultBehaviours = []string{InputBehaviour, "movement", "jump", "crouch", "look"}

var _ interact.Agent = (*Player)(nil)

// Behaviour is a named, independently switchable part of the player rig.
type Behaviour struct {
	Name    string
	Enabled bool
}

// Player is the first-person agent. EyeHeight and Pitch define the view ray.
type Player struct {
	id         interact.AgentID
	pose       physics.Pose
	Pitch      float64
	EyeHeight  float64
	behaviours []*Behaviour
}

// NewPlayer creates an agent with a fresh id and all behaviours enabled.
func NewPlayer(pose physics.Pose, behaviours ...string) *Player {
	if len(behaviours) == 0 {
		behaviours = DefaultBehaviours
	}
	p := &Player{
		id:        interact.AgentID(uuid.NewString()),
		pose:      pose,
		EyeHeight: 1.6,
	}
	for _, name := range behaviours {
		p.behaviours = append(p.behaviours, &Behaviour{Name: name, Enabled: true})
	}
	return p
}

func (p *Player) ID() interact.AgentID { return p.id }

func (p *Player) Pose() physics.Pose { return p.pose }

func (p *Player) SetPose(pose physics.Pose) { p.pose = pose }

func (p *Player) SetLocomotionEnabled(enabled bool) {
	for _, b := range p.behaviours {
		if b.Name == InputBehaviour {
			continue
		}
		b.Enabled = enabled
	}
}

// Enabled reports whether the named behaviour is on. Unknown names are off.
func (p *Player) Enabled(name string) bool {
	for _, b := range p.behaviours {
		if b.Name == name {
			return b.Enabled
		}
	}
	return false
}

// CanMove reports whether walking is currently allowed.
func (p *Player) CanMove() bool { return p.Enabled("movement") }

// Look turns the view; it is ignored while look is disabled.
func (p *Player) Look(yawDelta, pitchDelta float64) {
	if !p.Enabled("look") {
		return
	}
	p.pose.Yaw += yawDelta
	p.Pitch += pitchDelta
	if p.Pitch > 89 {
		p.Pitch = 89
	}
	if p.Pitch < -89 {
		p.Pitch = -89
	}
}

// Eye returns the view ray from the player's eye.
func (p *Player) Eye() physics.Ray {
	origin := p.pose.Position.Add(physics.Vec3{Y: p.EyeHeight})
	return physics.Ray{Origin: origin, Direction: physics.DirectionFromAngles(p.pose.Yaw, p.Pitch)}
}
