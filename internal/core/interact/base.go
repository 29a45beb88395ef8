package interact

import (
	"strings"

	"github.com/zeusync/interact/internal/core/events/bus"
)

// Base provides the optional parts of the contract: focus hooks that drive an
// optional highlighter, and an unsupported secondary action.
type Base struct {
	Highlight Highlighter
	focused   bool
}

func (b *Base) OnFocusEnter() {
	b.focused = true
	if b.Highlight != nil {
		b.Highlight.SetHighlighted(true)
	}
}

func (b *Base) OnFocusExit() {
	b.focused = false
	if b.Highlight != nil {
		b.Highlight.SetHighlighted(false)
	}
}

// Focused reports whether the object is the current focus.
func (b *Base) Focused() bool { return b.focused }

func (b *Base) CanSecondary(Agent) bool    { return false }
func (b *Base) SecondaryHint(Agent) string { return "" }
func (b *Base) Secondary(Agent)            {}

// Hint is the pull-once-per-tick UI sink value.
type Hint struct {
	Text        string
	CanInteract bool
}

// ComposeHint builds the hint for a target: its primary text, then the secondary
// hint on its own line when the secondary action is available and has text.
func ComposeHint(target Interactable, a Agent) Hint {
	if target == nil {
		return Hint{}
	}
	text := target.HintText(a)
	canSecondary := target.CanSecondary(a)
	if canSecondary {
		if alt := target.SecondaryHint(a); alt != "" {
			if text == "" {
				text = alt
			} else {
				text = strings.Join([]string{text, alt}, "\n")
			}
		}
	}
	return Hint{Text: text, CanInteract: target.CanPrimary(a) || canSecondary}
}

// Emitter publishes interaction events on an optional bus, stamping them with the
// source object and the simulation clock.
type Emitter struct {
	Bus    bus.EventBus
	Source string
	Clock  func() float64
}

// Emit publishes an event. Handler errors are returned for logging only.
func (e Emitter) Emit(eventType string, a Agent, data map[string]any) error {
	if e.Bus == nil {
		return nil
	}
	ev := bus.Event{Type: eventType, Source: e.Source, Data: data}
	if a != nil {
		ev.Agent = string(a.ID())
	}
	if e.Clock != nil {
		ev.At = e.Clock()
	}
	return e.Bus.Publish(ev)
}
