package events

// Subscriber receives visit events from the event bus. Topic patterns use
// NATS wildcard syntax; "visits.>" matches everything this service publishes.
type Subscriber interface {
	// Subscribe delivers raw event payloads on the returned channel.
	// Call the returned cancel function to unsubscribe and close the channel.
	Subscribe(topic string) (<-chan []byte, func(), error)
	Close() error
}
