package world

import (
	"github.com/zeusync/interact/internal/core/physics"
	"github.com/zeusync/interact/internal/core/vehicle"
)

// Input is the player's command for one tick.
type Input struct {
	// LookYaw and LookPitch are view deltas in degrees.
	LookYaw   float64
	LookPitch float64
	// Move is the walking velocity in the player's frame: X right, Z forward, m/s.
	Move      physics.Vec3
	Primary   bool
	Secondary bool
	Drive     vehicle.Controls
}

// Step holds an input for Ticks consecutive ticks. Button presses fire on the first
// tick only; look, move and drive inputs are held for the whole step.
type Step struct {
	Ticks     int              `json:"ticks,omitempty" yaml:"ticks,omitempty"`
	Note      string           `json:"note,omitempty" yaml:"note,omitempty"`
	LookYaw   float64          `json:"look_yaw,omitempty" yaml:"look_yaw,omitempty"`
	LookPitch float64          `json:"look_pitch,omitempty" yaml:"look_pitch,omitempty"`
	Move      physics.Vec3     `json:"move,omitempty" yaml:"move,omitempty"`
	Primary   bool             `json:"primary,omitempty" yaml:"primary,omitempty"`
	Secondary bool             `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	Drive     vehicle.Controls `json:"drive,omitempty" yaml:"drive,omitempty"`
}

func (s Step) ticks() int {
	if s.Ticks <= 0 {
		return 1
	}
	return s.Ticks
}

func (s Step) input(tick int) Input {
	in := Input{
		LookYaw:   s.LookYaw,
		LookPitch: s.LookPitch,
		Move:      s.Move,
		Drive:     s.Drive,
	}
	if tick == 0 {
		in.Primary = s.Primary
		in.Secondary = s.Secondary
	}
	return in
}

// Script replays scene steps tick by tick.
type Script struct {
	steps []Step
	step  int
	tick  int
}

func NewScript(steps []Step) *Script { return &Script{steps: steps} }

// Next returns the input for the next tick and the note of a step that starts on it.
// ok is false once the script is exhausted.
func (s *Script) Next() (in Input, note string, ok bool) {
	if s.Done() {
		return Input{}, "", false
	}
	st := s.steps[s.step]
	in = st.input(s.tick)
	if s.tick == 0 {
		note = st.Note
	}
	s.tick++
	if s.tick >= st.ticks() {
		s.step++
		s.tick = 0
	}
	return in, note, true
}

func (s *Script) Done() bool { return s.step >= len(s.steps) }
