package ports

import "context"

// EventPublisher delivers domain events to the message broker.  Delivery
// is best-effort: services log and ignore publish failures so a broker
// outage never blocks a request.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}
