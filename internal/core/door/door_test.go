package door

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/interact/internal/core/agent"
	"github.com/zeusync/interact/internal/core/events/bus"
	"github.com/zeusync/interact/internal/core/interact"
	"github.com/zeusync/interact/internal/core/inventory"
	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/internal/core/physics"
)

const eps = 1e-9

type fakeHinge struct {
	angle float64
	sets  int
}

func (h *fakeHinge) Angle() float64       { return h.angle }
func (h *fakeHinge) SetAngle(deg float64) { h.angle = deg; h.sets++ }

func lockableConfig() Config {
	return Config{Name: "front_door", Lockable: true, KeyName: "main_door", Duration: 0.5}
}

func settle(d *Door) {
	for i := 0; i < 100 && d.Transition() != nil; i++ {
		d.Update(0.02)
	}
}

type fixture struct {
	door   *Door
	hinge  *fakeHinge
	store  *inventory.Store
	player *agent.Player
}

func newFixture(t *testing.T, cfg Config, closedAngle float64) fixture {
	t.Helper()
	require.NoError(t, cfg.Validate())
	h := &fakeHinge{angle: closedAngle}
	store := inventory.NewStore()
	return fixture{
		door:   New(cfg, h, store),
		hinge:  h,
		store:  store,
		player: agent.NewPlayer(physics.Pose{}),
	}
}

func TestOpenAnimatesToOpenAngle(t *testing.T) {
	f := newFixture(t, lockableConfig(), 10)
	require.Equal(t, ClosedUnlocked, f.door.State())

	f.door.Primary(f.player)
	assert.Equal(t, OpenUnlocked, f.door.State())
	require.NotNil(t, f.door.Transition())

	f.door.Update(0.25)
	assert.InDelta(t, 55, f.hinge.angle, eps)

	f.door.Update(0.25)
	assert.InDelta(t, 100, f.hinge.angle, eps)
	assert.Nil(t, f.door.Transition())
	assert.InDelta(t, f.door.ClosedAngle()+90, f.door.TargetAngle(), eps)
}

func TestLockWithoutKeyIsRefused(t *testing.T) {
	f := newFixture(t, lockableConfig(), 0)
	f.door.Primary(f.player)
	settle(f.door)

	assert.False(t, f.door.CanSecondary(f.player))
	f.door.Secondary(f.player)
	assert.Equal(t, OpenUnlocked, f.door.State())
	assert.Nil(t, f.door.Transition())
}

func TestLockingOpenDoorForcesClose(t *testing.T) {
	f := newFixture(t, lockableConfig(), 0)
	f.store.GrantKey(f.player.ID(), "main_door")
	f.door.Primary(f.player)
	settle(f.door)
	require.InDelta(t, 90, f.hinge.angle, eps)

	require.True(t, f.door.CanSecondary(f.player))
	f.door.Secondary(f.player)

	assert.False(t, f.door.IsOpen())
	assert.True(t, f.door.IsLocked())
	assert.False(t, f.door.CanPrimary(f.player))

	settle(f.door)
	assert.InDelta(t, 0, f.hinge.angle, eps)
	assert.Equal(t, ClosedLocked, f.door.State())
}

func TestLockInterruptsOpeningSwing(t *testing.T) {
	f := newFixture(t, lockableConfig(), 0)
	f.store.GrantKey(f.player.ID(), "main_door")

	f.door.Primary(f.player)
	f.door.Update(0.25)
	require.InDelta(t, 45, f.hinge.angle, eps)

	f.door.Secondary(f.player)
	tr := f.door.Transition()
	require.NotNil(t, tr)
	assert.InDelta(t, 45, tr.From, eps)
	assert.InDelta(t, 0, tr.To, eps)

	f.door.Update(0.5)
	assert.InDelta(t, 0, f.hinge.angle, eps)
	assert.Nil(t, f.door.Transition())
}

func TestNewRequestReplacesSwing(t *testing.T) {
	f := newFixture(t, lockableConfig(), 0)
	f.door.Primary(f.player)
	f.door.Update(0.1)
	first := f.door.Transition()

	f.door.Primary(f.player)
	second := f.door.Transition()
	require.NotSame(t, first, second)
	assert.InDelta(t, 0, second.Elapsed, eps)

	// the replacement runs its full duration from where the old one stopped
	f.door.Update(0.45)
	assert.NotNil(t, f.door.Transition())
	f.door.Update(0.05)
	assert.InDelta(t, 0, f.hinge.angle, eps)
}

func TestLockedDoorNeverOpens(t *testing.T) {
	cfg := lockableConfig()
	cfg.StartLocked = true
	cfg.StartOpen = true
	f := newFixture(t, cfg, 0)
	require.Equal(t, ClosedLocked, f.door.State())

	for i := 0; i < 20; i++ {
		f.door.Primary(f.player)
		f.door.Update(0.1)
		require.False(t, f.door.IsOpen())
	}
	assert.InDelta(t, 0, f.hinge.angle, eps)

	f.store.GrantKey(f.player.ID(), "main_door")
	f.door.Secondary(f.player)
	assert.False(t, f.door.IsLocked())
	assert.Nil(t, f.door.Transition(), "unlock must not move the door")

	f.door.Primary(f.player)
	assert.True(t, f.door.IsOpen())
}

func TestLockIsIdempotent(t *testing.T) {
	f := newFixture(t, lockableConfig(), 0)
	f.store.GrantKey(f.player.ID(), "main_door")
	f.door.Primary(f.player)
	settle(f.door)

	f.door.Lock(f.player)
	require.Equal(t, ClosedLocked, f.door.State())
	swing := f.door.Transition()

	f.door.Lock(f.player)
	assert.Equal(t, ClosedLocked, f.door.State())
	assert.Same(t, swing, f.door.Transition())

	f.door.Unlock(f.player)
	f.door.Unlock(f.player)
	assert.Equal(t, ClosedUnlocked, f.door.State())
}

func TestHintText(t *testing.T) {
	cfg := lockableConfig()
	cfg.KeyLabel = "Front door key"
	f := newFixture(t, cfg, 0)

	assert.Equal(t, "Press [E] to open the door", f.door.HintText(f.player))
	f.door.Primary(f.player)
	assert.Equal(t, "Press [E] to close the door", f.door.HintText(f.player))

	f.store.GrantKey(f.player.ID(), "main_door")
	f.door.Secondary(f.player)
	assert.Equal(t, "The door is locked - use your key to unlock", f.door.HintText(f.player))
	assert.Equal(t, "Press [F] to unlock the door", f.door.SecondaryHint(f.player))

	stranger := agent.NewPlayer(physics.Pose{})
	assert.Equal(t, "The door is locked - requires [Front door key]", f.door.HintText(stranger))

	h := interact.ComposeHint(f.door, f.player)
	assert.Equal(t, "The door is locked - use your key to unlock\nPress [F] to unlock the door", h.Text)
	assert.True(t, h.CanInteract)
	assert.False(t, interact.ComposeHint(f.door, stranger).CanInteract)
}

func TestShortestArcAcrossWrap(t *testing.T) {
	cfg := Config{Name: "bath", OpenAngle: 30, Duration: 1}
	f := newFixture(t, cfg, 340)
	f.door.Primary(f.player)
	f.door.Update(0.5)
	assert.InDelta(t, 355, f.hinge.angle, eps)
	f.door.Update(0.5)
	assert.InDelta(t, 370, f.hinge.angle, eps)
}

func TestHalfTurnSwingsInOpenDirection(t *testing.T) {
	f := newFixture(t, Config{Name: "barn", OpenAngle: 180, OpenDirection: 1, Duration: 0.5}, 0)
	f.door.Primary(f.player)
	f.door.Update(0.25)
	assert.InDelta(t, 90, f.hinge.angle, eps)
	f.door.Update(0.25)
	assert.InDelta(t, 180, f.hinge.angle, eps)
}

func TestPlainDoorHasNoSecondary(t *testing.T) {
	f := newFixture(t, Config{Name: "toilet", OpenDirection: -5}, 0)
	f.store.GrantKey(f.player.ID(), "main_door")
	assert.False(t, f.door.CanSecondary(f.player))
	f.door.Primary(f.player)
	settle(f.door)
	assert.InDelta(t, -90, f.hinge.angle, eps)
}

func TestStartOpenPositionsHinge(t *testing.T) {
	f := newFixture(t, Config{Name: "d", StartOpen: true}, 5)
	assert.True(t, f.door.IsOpen())
	assert.InDelta(t, 95, f.hinge.angle, eps)
	assert.InDelta(t, 5, f.door.ClosedAngle(), eps)
}

func TestMissingHingeDisablesDoor(t *testing.T) {
	d := New(lockableConfig(), nil, inventory.NewStore())
	p := agent.NewPlayer(physics.Pose{})
	assert.ErrorIs(t, d.ConfigErr(), interact.ErrMissingHinge)
	assert.False(t, d.CanPrimary(p))
	assert.False(t, d.CanSecondary(p))
	d.Primary(p)
	d.Update(1)
	assert.False(t, d.IsOpen())
	assert.Empty(t, d.HintText(p))
}

func TestMissingHingeLogsOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := log.FromZap(zap.New(core), log.LevelDebug)
	store := inventory.NewStore()
	p := agent.NewPlayer(physics.Pose{})
	store.GrantKey(p.ID(), "main_door")

	d := New(lockableConfig(), nil, store, WithLogger(l))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)

	for i := 0; i < 3; i++ {
		d.Primary(p)
		d.Secondary(p)
		d.Lock(p)
		d.Update(0.1)
		_ = d.HintText(p)
		_ = interact.ComposeHint(d, p)
	}
	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestSmoothEase(t *testing.T) {
	f := newFixture(t, Config{Name: "d", Ease: EaseSmooth, Duration: 1}, 0)
	f.door.Primary(f.player)
	f.door.Update(0.25)
	assert.InDelta(t, 90*physics.SmoothStep(0.25), f.hinge.angle, eps)
}

func TestValidate(t *testing.T) {
	assert.Error(t, Config{Lockable: true}.Validate())
	assert.Error(t, Config{Duration: -1}.Validate())
	assert.Error(t, Config{Ease: "bounce"}.Validate())
	assert.NoError(t, lockableConfig().Validate())
}

func TestEventsPublished(t *testing.T) {
	b := bus.New()
	var got []string
	_, err := b.Subscribe(bus.Wildcard, func(e bus.Event) error {
		got = append(got, e.Type)
		return nil
	})
	require.NoError(t, err)

	store := inventory.NewStore()
	p := agent.NewPlayer(physics.Pose{})
	store.GrantKey(p.ID(), "main_door")
	d := New(lockableConfig(), &fakeHinge{}, store, WithEvents(b, func() float64 { return 0 }))

	d.Primary(p)
	d.Secondary(p)
	d.Secondary(p)
	assert.Equal(t, []string{
		interact.EventDoorOpened,
		interact.EventDoorClosed,
		interact.EventDoorLocked,
		interact.EventDoorUnlocked,
	}, got)
}
