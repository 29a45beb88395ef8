package targeting

import (
	"github.com/zeusync/interact/internal/core/events/bus"
	"github.com/zeusync/interact/internal/core/interact"
	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/internal/core/physics"
)

// Service resolves the focused interactable once per tick and routes the player's
// primary and secondary commands to it. It owns the focus exclusively and holds a
// lookup relation to the target only; it never mutates world state itself.
type Service struct {
	rays     RayTargetProvider
	resolver Resolver
	agent    interact.Agent
	log      log.Log
	events   interact.Emitter

	focus  interact.Interactable
	pinned interact.Interactable
	hint   interact.Hint
}

type Option func(*Service)

func WithLogger(l log.Log) Option {
	return func(s *Service) { s.log = l }
}

// WithEvents publishes focus.enter and focus.exit on b, stamped with clock.
func WithEvents(b bus.EventBus, clock func() float64) Option {
	return func(s *Service) { s.events = interact.Emitter{Bus: b, Clock: clock} }
}

func New(rays RayTargetProvider, resolver Resolver, agent interact.Agent, opts ...Option) *Service {
	s := &Service{
		rays:     rays,
		resolver: resolver,
		agent:    agent,
		log:      log.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(log.String("component", "targeting"))
	return s
}

// Tick casts the view ray, picks the nearest hit that resolves to an interactable and
// applies the focus change rule. The hint is refreshed even when focus is unchanged.
func (s *Service) Tick(origin, direction physics.Vec3, maxDistance float64) {
	s.setFocus(s.candidate(origin, direction, maxDistance))
	s.Refresh()
}

func (s *Service) candidate(origin, direction physics.Vec3, maxDistance float64) interact.Interactable {
	if s.rays == nil || s.resolver == nil {
		return nil
	}
	for _, hit := range s.rays.Query(origin, direction, maxDistance) {
		if target, ok := s.resolver.Resolve(hit.Collider); ok && target != nil {
			return target
		}
	}
	return nil
}

// setFocus always finishes the exit of the old focus before entering the new one.
func (s *Service) setFocus(next interact.Interactable) {
	if next == s.focus {
		return
	}
	if prev := s.focus; prev != nil {
		prev.OnFocusExit()
		s.emit(interact.EventFocusExit, prev)
	}
	if next != nil {
		next.OnFocusEnter()
		s.emit(interact.EventFocusEnter, next)
	}
	s.focus = next
	if next != nil {
		s.log.Debug("focus changed", log.String("target", nameOf(next)))
	} else {
		s.log.Debug("focus cleared")
	}
}

// TryPrimary runs the primary action of the acting target when available and
// refreshes the hint in the same call. It reports whether the action was invoked.
func (s *Service) TryPrimary() bool {
	target := s.actionTarget()
	if target == nil || !target.CanPrimary(s.agent) {
		return false
	}
	target.Primary(s.agent)
	s.Refresh()
	return true
}

// TrySecondary is the secondary-action counterpart of TryPrimary.
func (s *Service) TrySecondary() bool {
	target := s.actionTarget()
	if target == nil || !target.CanSecondary(s.agent) {
		return false
	}
	target.Secondary(s.agent)
	s.Refresh()
	return true
}

// Refresh recomputes the hint from the acting target's current state.
func (s *Service) Refresh() {
	s.hint = interact.ComposeHint(s.actionTarget(), s.agent)
}

// Hint is the UI sink value for the current tick.
func (s *Service) Hint() interact.Hint { return s.hint }

// Focus returns the ray focus, or nil.
func (s *Service) Focus() interact.Interactable { return s.focus }

// Pin routes hint and actions to target regardless of the ray, e.g. while the agent
// is mounted and the vehicle is no longer under the crosshair. Ray focus tracking is
// unaffected.
func (s *Service) Pin(target interact.Interactable) {
	s.pinned = target
	s.Refresh()
}

// Unpin restores ray-driven actions if target is still the pinned one.
func (s *Service) Unpin(target interact.Interactable) {
	if s.pinned != target {
		return
	}
	s.pinned = nil
	s.Refresh()
}

// Pinned returns the pinned target, or nil.
func (s *Service) Pinned() interact.Interactable { return s.pinned }

func (s *Service) actionTarget() interact.Interactable {
	if s.pinned != nil {
		return s.pinned
	}
	return s.focus
}

func (s *Service) emit(eventType string, target interact.Interactable) {
	em := s.events
	em.Source = nameOf(target)
	if err := em.Emit(eventType, s.agent, nil); err != nil {
		s.log.Warn("event handler failed", log.String("event", eventType), log.Error(err))
	}
}
