package events

import (
	"context"
	"sync"
)

type collectorKey struct{}

// Collector gathers events published while a request context is in flight.
type Collector struct {
	mu     sync.Mutex
	events []Event
}

func WithCollector(ctx context.Context) (context.Context, *Collector) {
	c := &Collector{}
	return context.WithValue(ctx, collectorKey{}, c), c
}

func CollectorFrom(ctx context.Context) (*Collector, bool) {
	c, ok := ctx.Value(collectorKey{}).(*Collector)
	return c, ok
}

func (c *Collector) Add(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

// Collect subscribes a handler that copies eventType events into the
// collector of the publishing context, if any.
func (eb *EventBus) Collect(eventType string) {
	eb.Subscribe(eventType, func(ctx context.Context, event Event) error {
		if c, ok := CollectorFrom(ctx); ok {
			c.Add(event)
		}
		return nil
	})
}

// AlertMessages returns the messages of collected budget alerts.
func AlertMessages(ctx context.Context) []string {
	c, ok := CollectorFrom(ctx)
	if !ok {
		return nil
	}
	var messages []string
	for _, e := range c.Events() {
		if alert, ok := e.(*BudgetAlertEvent); ok {
			messages = append(messages, alert.Message)
		}
	}
	return messages
}
