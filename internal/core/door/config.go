package door

import (
	"fmt"
	"math"
)

// Hints holds the player-facing prompt strings.
type Hints struct {
	Open         string `json:"open,omitempty" yaml:"open,omitempty"`
	Close        string `json:"close,omitempty" yaml:"close,omitempty"`
	Lock         string `json:"lock,omitempty" yaml:"lock,omitempty"`
	Unlock       string `json:"unlock,omitempty" yaml:"unlock,omitempty"`
	LockedNoKey  string `json:"locked_no_key,omitempty" yaml:"locked_no_key,omitempty"`
	LockedHasKey string `json:"locked_has_key,omitempty" yaml:"locked_has_key,omitempty"`
}

// Config describes one door. A door with Lockable false is a plain swing door with
// no secondary action.
type Config struct {
	Name          string  `json:"name" yaml:"name"`
	OpenAngle     float64 `json:"open_angle,omitempty" yaml:"open_angle,omitempty"`
	Duration      float64 `json:"duration,omitempty" yaml:"duration,omitempty"`
	OpenDirection float64 `json:"open_direction,omitempty" yaml:"open_direction,omitempty"`
	Ease          string  `json:"ease,omitempty" yaml:"ease,omitempty"`
	StartOpen     bool    `json:"start_open,omitempty" yaml:"start_open,omitempty"`
	StartLocked   bool    `json:"start_locked,omitempty" yaml:"start_locked,omitempty"`
	Lockable      bool    `json:"lockable,omitempty" yaml:"lockable,omitempty"`
	KeyName       string  `json:"key_name,omitempty" yaml:"key_name,omitempty"`
	KeyLabel      string  `json:"key_label,omitempty" yaml:"key_label,omitempty"`
	Hints         Hints   `json:"hints,omitempty" yaml:"hints,omitempty"`
}

const (
	EaseLinear = "linear"
	EaseSmooth = "smooth"
)

// Validate rejects settings that cannot describe a door.
func (c Config) Validate() error {
	if c.Lockable && c.KeyName == "" {
		return fmt.Errorf("door %q: lockable door requires key_name", c.Name)
	}
	if c.Duration < 0 {
		return fmt.Errorf("door %q: duration must not be negative", c.Name)
	}
	switch c.Ease {
	case "", EaseLinear, EaseSmooth:
	default:
		return fmt.Errorf("door %q: unknown ease %q", c.Name, c.Ease)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Name == "" {
		c.Name = "door"
	}
	if c.OpenAngle == 0 {
		c.OpenAngle = 90
	}
	if c.Duration == 0 {
		c.Duration = 0.5
	}
	if c.OpenDirection == 0 {
		c.OpenDirection = 1
	} else {
		c.OpenDirection = math.Copysign(1, c.OpenDirection)
	}
	if c.Ease == "" {
		c.Ease = EaseLinear
	}
	if c.KeyLabel == "" {
		c.KeyLabel = c.KeyName
	}
	h := &c.Hints
	if h.Open == "" {
		h.Open = "Press [E] to open the door"
	}
	if h.Close == "" {
		h.Close = "Press [E] to close the door"
	}
	if h.Lock == "" {
		h.Lock = "Press [F] to lock the door"
	}
	if h.Unlock == "" {
		h.Unlock = "Press [F] to unlock the door"
	}
	if h.LockedNoKey == "" {
		h.LockedNoKey = fmt.Sprintf("The door is locked - requires [%s]", c.KeyLabel)
	}
	if h.LockedHasKey == "" {
		h.LockedHasKey = "The door is locked - use your key to unlock"
	}
	return c
}
