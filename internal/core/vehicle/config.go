package vehicle

import (
	"fmt"
	"strings"
)

type Hints struct {
	Mount    string `json:"mount,omitempty" yaml:"mount,omitempty"`
	Dismount string `json:"dismount,omitempty" yaml:"dismount,omitempty"`
	Brake    string `json:"brake,omitempty" yaml:"brake,omitempty"`
	Boost    string `json:"boost,omitempty" yaml:"boost,omitempty"`
	Lights   string `json:"lights,omitempty" yaml:"lights,omitempty"`
	MustStop string `json:"must_stop,omitempty" yaml:"must_stop,omitempty"`
}

// Controls joins the driving prompts shown while the vehicle is moving.
func (h Hints) Controls(withLights bool) string {
	parts := []string{h.Brake, h.Boost}
	if withLights {
		parts = append(parts, h.Lights)
	}
	return strings.Join(parts, " - ")
}

type Config struct {
	Name string `json:"name" yaml:"name"`
	// StopThreshold is the planar speed at or below which the vehicle counts as stopped.
	StopThreshold float64 `json:"stop_threshold,omitempty" yaml:"stop_threshold,omitempty"`
	// DebounceWindow ignores dismount requests for this many seconds after mounting.
	DebounceWindow float64 `json:"debounce_window,omitempty" yaml:"debounce_window,omitempty"`
	// DismountSideOffset places the agent this far along the seat's right axis.
	DismountSideOffset float64 `json:"dismount_side_offset,omitempty" yaml:"dismount_side_offset,omitempty"`
	// MustStopHintFor keeps the must-stop prompt visible after a refused dismount.
	MustStopHintFor float64 `json:"must_stop_hint_for,omitempty" yaml:"must_stop_hint_for,omitempty"`
	Hints           Hints   `json:"hints,omitempty" yaml:"hints,omitempty"`
}

func (c Config) Validate() error {
	if c.StopThreshold < 0 || c.DebounceWindow < 0 || c.MustStopHintFor < 0 {
		return fmt.Errorf("vehicle %q: thresholds must not be negative", c.Name)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Name == "" {
		c.Name = "vehicle"
	}
	if c.StopThreshold == 0 {
		c.StopThreshold = 0.5
	}
	if c.DebounceWindow == 0 {
		c.DebounceWindow = 0.25
	}
	if c.DismountSideOffset == 0 {
		c.DismountSideOffset = 0.8
	}
	if c.DismountSideOffset < 0 {
		c.DismountSideOffset = 0
	}
	if c.MustStopHintFor == 0 {
		c.MustStopHintFor = 1.5
	}
	h := &c.Hints
	if h.Mount == "" {
		h.Mount = "Press [E] to get in"
	}
	if h.Dismount == "" {
		h.Dismount = "Press [E] to get out"
	}
	if h.Brake == "" {
		h.Brake = "Hold [Space] to brake"
	}
	if h.Boost == "" {
		h.Boost = "Hold [Shift] to boost"
	}
	if h.Lights == "" {
		h.Lights = "Press [F] to toggle the lights"
	}
	if h.MustStop == "" {
		h.MustStop = "The vehicle must stop before you can get out"
	}
	return c
}
