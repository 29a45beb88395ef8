package bus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testObserver struct {
	publishCount   int
	deliveredCount int
	lastErr        error
}

func (o *testObserver) OnPublish(Event) {
	o.publishCount++
}

func (o *testObserver) OnDelivered(_ Event, handlers int, err error) {
	o.deliveredCount += handlers
	o.lastErr = err
}

func TestBasicPublishSubscribe(t *testing.T) {
	b := New()
	var got []Event
	_, err := b.Subscribe("door.locked", func(e Event) error {
		got = append(got, e)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, b.Publish(Event{Type: "door.locked", Source: "front_door", At: 1.5}))
	require.NoError(t, b.Publish(Event{Type: "door.opened", Source: "front_door"}))

	require.Len(t, got, 1)
	assert.Equal(t, "front_door", got[0].Source)
	assert.Equal(t, 1.5, got[0].At)
}

func TestDeliveryFollowsSubscriptionOrder(t *testing.T) {
	b := New()
	var order []string
	_, _ = b.Subscribe("focus.exit", func(Event) error { order = append(order, "first"); return nil })
	_, _ = b.Subscribe(Wildcard, func(Event) error { order = append(order, "wildcard"); return nil })
	_, _ = b.Subscribe("focus.exit", func(Event) error { order = append(order, "second"); return nil })

	require.NoError(t, b.Publish(Event{Type: "focus.exit"}))
	assert.Equal(t, []string{"first", "second", "wildcard"}, order)
}

func TestHandlerErrorsAreJoined(t *testing.T) {
	b := New()
	errA := errors.New("a")
	errB := errors.New("b")
	_, _ = b.Subscribe("x", func(Event) error { return errA })
	_, _ = b.Subscribe("x", func(Event) error { return errB })

	err := b.Publish(Event{Type: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New()
	count := 0
	sub, err := b.Subscribe("e", func(Event) error { count++; return nil })
	require.NoError(t, err)

	_ = b.Publish(Event{Type: "e"})
	require.NoError(t, b.Unsubscribe(sub))
	require.NoError(t, sub.Cancel())
	_ = b.Publish(Event{Type: "e"})

	assert.Equal(t, 1, count)
	assert.False(t, sub.IsActive())
	assert.NotEmpty(t, sub.ID())
	assert.NoError(t, b.Unsubscribe(nil))
}

func TestSubscribeValidates(t *testing.T) {
	b := New()
	_, err := b.Subscribe("", func(Event) error { return nil })
	assert.Error(t, err)
	_, err = b.Subscribe("e", nil)
	assert.Error(t, err)
}

func TestFiltersDropSilently(t *testing.T) {
	b := New()
	obs := &testObserver{}
	b.AddObserver(obs)
	count := 0
	_, _ = b.Subscribe("e", func(Event) error { count++; return nil })

	err := b.PublishWithFilters(Event{Type: "e"}, func(Event) bool { return false })
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, uint64(1), b.GetMetrics().DroppedByFilters)
}

func TestObserverMetricsOptional(t *testing.T) {
	b := New()
	_, _ = b.Subscribe("e", func(Event) error { return nil })
	_ = b.Publish(Event{Type: "e"})
	assert.Zero(t, b.GetMetrics().Published)

	obs := &testObserver{}
	b.AddObserver(obs)
	_ = b.Publish(Event{Type: "e"})
	m := b.GetMetrics()
	assert.Equal(t, uint64(1), m.Published)
	assert.Equal(t, uint64(1), m.DeliveredHandlers)
	assert.Equal(t, uint64(1), m.SubscribersActive)
	assert.Equal(t, 1, obs.publishCount)
	assert.Equal(t, 1, obs.deliveredCount)

	b.RemoveObserver(obs)
	_ = b.Publish(Event{Type: "e"})
	assert.Equal(t, 1, obs.publishCount)
}
