package outbox

import "context"

// Event is a named domain event.
type Event interface {
	EventName() string
}

// Handler processes a published event. Errors are logged by the bus, never
// propagated to the publisher.
type Handler func(ctx context.Context, e Event) error

// Publisher enqueues events for asynchronous delivery.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Subscriber registers handlers by event name.
type Subscriber interface {
	Subscribe(eventName string, h Handler)
}
