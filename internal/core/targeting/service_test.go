package targeting

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/interact/internal/core/events/bus"
	"github.com/zeusync/interact/internal/core/interact"
	"github.com/zeusync/interact/internal/core/physics"
)

type stubAgent struct{}

func (stubAgent) ID() interact.AgentID      { return "player" }
func (stubAgent) Pose() physics.Pose        { return physics.Pose{} }
func (stubAgent) SetPose(physics.Pose)      {}
func (stubAgent) SetLocomotionEnabled(bool) {}

type journal struct{ entries []string }

func (j *journal) add(s string) { j.entries = append(j.entries, s) }

type fakeTarget struct {
	interact.Base
	name      string
	log       *journal
	open      bool
	primaryOK bool
	altOK     bool
}

func (p *fakeTarget) Name() string                        { return p.name }
func (p *fakeTarget) OnFocusEnter()                       { p.log.add("enter:" + p.name) }
func (p *fakeTarget) OnFocusExit()                        { p.log.add("exit:" + p.name) }
func (p *fakeTarget) CanPrimary(interact.Agent) bool      { return p.primaryOK }
func (p *fakeTarget) CanSecondary(interact.Agent) bool    { return p.altOK }
func (p *fakeTarget) SecondaryHint(interact.Agent) string { return "alt " + p.name }
func (p *fakeTarget) Secondary(interact.Agent)            { p.log.add("secondary:" + p.name) }

func (p *fakeTarget) HintText(interact.Agent) string {
	if p.open {
		return "close " + p.name
	}
	return "open " + p.name
}

func (p *fakeTarget) Primary(interact.Agent) {
	p.open = !p.open
	p.log.add("primary:" + p.name)
}

type fakeRays struct{ hits []Hit }

func (f *fakeRays) Query(physics.Vec3, physics.Vec3, float64) []Hit { return f.hits }

type mapResolver map[ColliderID]interact.Interactable

func (m mapResolver) Resolve(id ColliderID) (interact.Interactable, bool) {
	t, ok := m[id]
	return t, ok
}

func newFixture() (*Service, *fakeRays, mapResolver, *journal) {
	rays := &fakeRays{}
	res := mapResolver{}
	j := &journal{}
	return New(rays, res, stubAgent{}), rays, res, j
}

func tick(s *Service) { s.Tick(physics.Vec3{}, physics.Vec3{Z: 1}, 2.2) }

func TestNearestInteractableWins(t *testing.T) {
	s, rays, res, j := newFixture()
	door := &fakeTarget{name: "door", log: j, primaryOK: true}
	lamp := &fakeTarget{name: "lamp", log: j, primaryOK: true}
	res[2] = door
	res[3] = lamp

	// collider 1 is a wall without the capability
	rays.hits = []Hit{{Collider: 1, Distance: 0.5}, {Collider: 2, Distance: 1}, {Collider: 3, Distance: 1.5}}
	tick(s)
	assert.Same(t, door, s.Focus())
	assert.Equal(t, "open door", s.Hint().Text)
	assert.True(t, s.Hint().CanInteract)
}

func TestNoInteractableClearsFocus(t *testing.T) {
	s, rays, res, j := newFixture()
	res[2] = &fakeTarget{name: "door", log: j}
	rays.hits = []Hit{{Collider: 2, Distance: 1}}
	tick(s)
	require.NotNil(t, s.Focus())

	rays.hits = []Hit{{Collider: 9, Distance: 1}}
	tick(s)
	assert.Nil(t, s.Focus())
	assert.Equal(t, interact.Hint{}, s.Hint())
	assert.Equal(t, []string{"enter:door", "exit:door"}, j.entries)
}

func TestExitPrecedesEnterWithinOneTick(t *testing.T) {
	s, rays, res, j := newFixture()
	res[1] = &fakeTarget{name: "a", log: j}
	res[2] = &fakeTarget{name: "b", log: j}

	rays.hits = []Hit{{Collider: 1}}
	tick(s)
	rays.hits = []Hit{{Collider: 2}}
	tick(s)

	assert.Equal(t, []string{"enter:a", "exit:a", "enter:b"}, j.entries)
}

func TestUnchangedFocusOnlyRefreshesHint(t *testing.T) {
	s, rays, res, j := newFixture()
	door := &fakeTarget{name: "door", log: j, primaryOK: true}
	res[1] = door
	rays.hits = []Hit{{Collider: 1}}
	tick(s)

	door.open = true
	tick(s)
	tick(s)

	assert.Equal(t, []string{"enter:door"}, j.entries)
	assert.Equal(t, "close door", s.Hint().Text)
}

func TestTwoCollidersOfSameTargetKeepFocus(t *testing.T) {
	s, rays, res, j := newFixture()
	car := &fakeTarget{name: "car", log: j}
	res[1] = car
	res[2] = car

	rays.hits = []Hit{{Collider: 1}}
	tick(s)
	rays.hits = []Hit{{Collider: 2}}
	tick(s)
	assert.Equal(t, []string{"enter:car"}, j.entries)
}

func TestFocusMatchesFirstResolvableCandidate(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	s, rays, res, j := newFixture()
	for id := ColliderID(0); id < 10; id++ {
		if id%3 == 0 {
			continue
		}
		res[id] = &fakeTarget{name: fmt.Sprint(id), log: j}
	}

	var prev interact.Interactable
	for round := 0; round < 200; round++ {
		n := rng.IntN(5)
		rays.hits = rays.hits[:0]
		var want interact.Interactable
		for i := 0; i < n; i++ {
			id := ColliderID(rng.IntN(10))
			rays.hits = append(rays.hits, Hit{Collider: id, Distance: float64(i)})
			if target, ok := res[id]; ok && want == nil {
				want = target
			}
		}
		j.entries = nil
		tick(s)

		assert.Equal(t, want, s.Focus(), "round %d", round)
		if want == prev {
			assert.Empty(t, j.entries, "round %d", round)
		}
		if want != prev && prev != nil && want != nil {
			require.Len(t, j.entries, 2)
			assert.Equal(t, "exit:"+prev.(*fakeTarget).name, j.entries[0])
			assert.Equal(t, "enter:"+want.(*fakeTarget).name, j.entries[1])
		}
		prev = want
	}
}

func TestActionsWithoutFocusAreNoOps(t *testing.T) {
	s, _, _, _ := newFixture()
	assert.False(t, s.TryPrimary())
	assert.False(t, s.TrySecondary())
}

func TestActionsRespectAvailability(t *testing.T) {
	s, rays, res, j := newFixture()
	res[1] = &fakeTarget{name: "door", log: j, primaryOK: false, altOK: false}
	rays.hits = []Hit{{Collider: 1}}
	tick(s)

	assert.False(t, s.TryPrimary())
	assert.False(t, s.TrySecondary())
	assert.Equal(t, []string{"enter:door"}, j.entries)
}

func TestPrimaryRefreshesHintImmediately(t *testing.T) {
	s, rays, res, j := newFixture()
	res[1] = &fakeTarget{name: "door", log: j, primaryOK: true, altOK: true}
	rays.hits = []Hit{{Collider: 1}}
	tick(s)
	assert.Equal(t, "open door\nalt door", s.Hint().Text)

	require.True(t, s.TryPrimary())
	assert.Equal(t, "close door\nalt door", s.Hint().Text)

	require.True(t, s.TrySecondary())
	assert.Equal(t, []string{"enter:door", "primary:door", "secondary:door"}, j.entries)
}

func TestPinnedTargetReceivesActions(t *testing.T) {
	s, rays, res, j := newFixture()
	car := &fakeTarget{name: "car", log: j, primaryOK: true}
	lamp := &fakeTarget{name: "lamp", log: j, primaryOK: true}
	res[1] = lamp

	s.Pin(car)
	assert.Equal(t, "open car", s.Hint().Text)

	rays.hits = []Hit{{Collider: 1}}
	tick(s)
	assert.Same(t, lamp, s.Focus())
	assert.Equal(t, "open car", s.Hint().Text)

	require.True(t, s.TryPrimary())
	assert.True(t, car.open)
	assert.False(t, lamp.open)

	s.Unpin(lamp)
	assert.Same(t, car, s.Pinned())
	s.Unpin(car)
	assert.Nil(t, s.Pinned())
	assert.Equal(t, "open lamp", s.Hint().Text)
}

func TestFocusEventsPublished(t *testing.T) {
	b := bus.New()
	var types []string
	_, err := b.Subscribe(bus.Wildcard, func(e bus.Event) error {
		types = append(types, e.Type+":"+e.Source)
		return nil
	})
	require.NoError(t, err)

	rays := &fakeRays{}
	j := &journal{}
	res := mapResolver{1: &fakeTarget{name: "a", log: j}, 2: &fakeTarget{name: "b", log: j}}
	s := New(rays, res, stubAgent{}, WithEvents(b, func() float64 { return 1 }))

	rays.hits = []Hit{{Collider: 1}}
	tick(s)
	rays.hits = []Hit{{Collider: 2}}
	tick(s)

	assert.Equal(t, []string{"focus.enter:a", "focus.exit:a", "focus.enter:b"}, types)
}
