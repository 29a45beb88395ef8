package world

import (
	"github.com/zeusync/interact/internal/core/props"
	"github.com/zeusync/interact/internal/core/vehicle"
)

var _ vehicle.Accessory = (*Headlight)(nil)

// Headlight is the vehicle accessory driving one or more lights. The driver's
// choice survives dismounting; the lights are only lit while someone is mounted.
type Headlight struct {
	lights  []props.Light
	on      bool
	mounted bool
}

func NewHeadlight(lights ...props.Light) *Headlight {
	h := &Headlight{lights: lights}
	h.apply()
	return h
}

func (h *Headlight) OnMounted() {
	h.mounted = true
	h.apply()
}

func (h *Headlight) OnDismounted() {
	h.mounted = false
	h.apply()
}

func (h *Headlight) Toggle() bool {
	h.on = !h.on
	h.apply()
	return h.on
}

// On reports the driver's switch position.
func (h *Headlight) On() bool { return h.on }

func (h *Headlight) apply() {
	for _, l := range h.lights {
		l.SetEnabled(h.on && h.mounted)
	}
}
