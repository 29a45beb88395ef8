package props

import (
	"github.com/zeusync/interact/internal/core/interact"
	"github.com/zeusync/interact/internal/core/observability/log"
)

// Light is a controlled light source.
type Light interface {
	SetEnabled(on bool)
}

type SwitchHints struct {
	TurnOn  string `json:"turn_on,omitempty" yaml:"turn_on,omitempty"`
	TurnOff string `json:"turn_off,omitempty" yaml:"turn_off,omitempty"`
}

type SwitchConfig struct {
	Name    string      `json:"name" yaml:"name"`
	StartOn bool        `json:"start_on,omitempty" yaml:"start_on,omitempty"`
	Hints   SwitchHints `json:"hints,omitempty" yaml:"hints,omitempty"`
}

func (c SwitchConfig) withDefaults() SwitchConfig {
	if c.Name == "" {
		c.Name = "light_switch"
	}
	if c.Hints.TurnOn == "" {
		c.Hints.TurnOn = "Press [E] to turn on the light"
	}
	if c.Hints.TurnOff == "" {
		c.Hints.TurnOff = "Press [E] to turn off the light"
	}
	return c
}

var _ interact.Interactable = (*LightSwitch)(nil)

// LightSwitch toggles an on/off flag and mirrors it onto its lights.
type LightSwitch struct {
	common
	cfg    SwitchConfig
	lights []Light
	on     bool
}

// NewLightSwitch applies the start state to every light immediately.
func NewLightSwitch(cfg SwitchConfig, lights []Light, opts ...Option) *LightSwitch {
	s := &LightSwitch{cfg: cfg.withDefaults(), lights: lights, on: cfg.StartOn}
	s.apply("light_switch", s.cfg.Name, opts)
	s.reflect()
	return s
}

func (s *LightSwitch) Name() string { return s.cfg.Name }
func (s *LightSwitch) IsOn() bool   { return s.on }

func (s *LightSwitch) HintText(interact.Agent) string {
	if s.on {
		return s.cfg.Hints.TurnOff
	}
	return s.cfg.Hints.TurnOn
}

func (s *LightSwitch) CanPrimary(interact.Agent) bool { return true }

func (s *LightSwitch) Primary(a interact.Agent) {
	s.on = !s.on
	s.reflect()
	s.log.Debug("toggled", log.Bool("on", s.on))
	s.emit(interact.EventSwitchToggled, a, map[string]any{"on": s.on})
}

func (s *LightSwitch) reflect() {
	for _, l := range s.lights {
		if l != nil {
			l.SetEnabled(s.on)
		}
	}
}
