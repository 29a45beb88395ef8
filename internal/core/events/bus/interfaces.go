package bus

// EventBus is an in-process pub/sub bus for interaction events.
//
// Key characteristics:
//   - Type-based fan-out: handlers subscribe by Event.Type.
//   - Synchronous delivery: Publish runs handlers in the caller, in subscription order,
//     so a publish during a tick completes inside that tick.
//   - Error aggregation: handler errors are joined and returned from Publish.
//   - Optional observability: metrics are produced only when observers are registered.
type EventBus interface {
	// Publish delivers the event to all active subscribers of event.Type.
	Publish(event Event) error
	// Subscribe registers a handler for an event type and returns a handle to cancel it.
	// The wildcard type "*" receives every event.
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels the given Subscription. It is safe to call with nil.
	Unsubscribe(Subscription) error
	// PublishWithFilters drops the event silently if any filter rejects it.
	PublishWithFilters(event Event, filters ...EventFilter) error

	AddObserver(obs EventBusObserver)
	RemoveObserver(obs EventBusObserver)
	// GetMetrics returns a snapshot of accumulated metrics. Metrics are only
	// collected when at least one observer is registered.
	GetMetrics() EventBusMetrics
}

// Wildcard subscribes to every event type.
const Wildcard = "*"

// Event is an immutable interaction event.
//
// Fields:
// - Type: routing key, e.g. "door.locked".
// - Source: name of the world object that emitted it.
// - Agent: id of the acting agent, empty for non-agent events.
// - At: simulation time in seconds.
// - Data: optional payload.
type Event struct {
	Type   string
	Source string
	Agent  string
	At     float64
	Data   map[string]any
}

type (
	EventHandler func(event Event) error
	EventFilter  func(event Event) bool
)

// Subscription represents a registered handler bound to an event type.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler. Multiple calls are safe.
	Cancel() error
}

// EventBusObserver is notified about deliveries. Observers should return quickly.
type EventBusObserver interface {
	OnPublish(event Event)
	OnDelivered(event Event, handlers int, err error)
}

type EventBusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	DroppedByFilters  uint64
	SubscribersActive uint64
}
