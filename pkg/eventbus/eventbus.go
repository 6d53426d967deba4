package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Event is anything published on the bus.
type Event interface {
	Type() string
}

// Handler reacts to a published event.
type Handler func(ctx context.Context, e Event)

// Bus defines the contract for publishing and subscribing to events.
type Bus interface {
	Publish(ctx context.Context, e Event) error
	Subscribe(eventType string, handler Handler)
}

// SimpleBus dispatches events synchronously to handlers in subscription order.
type SimpleBus struct {
	handlers map[string][]Handler
	mu       sync.RWMutex
}

func NewSimpleBus() *SimpleBus {
	return &SimpleBus{handlers: make(map[string][]Handler)}
}

func (b *SimpleBus) Publish(ctx context.Context, e Event) error {
	slog.Debug("EventBus.Publish", "event_type", e.Type(), "concrete_type", fmt.Sprintf("%T", e))
	b.mu.RLock()
	handlers := b.handlers[e.Type()]
	b.mu.RUnlock()
	for _, handler := range handlers {
		handler(ctx, e)
	}
	return nil
}

func (b *SimpleBus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

var _ Bus = (*SimpleBus)(nil)
