package events

import "context"

// NoopPublisher drops every event. It stands in for NATS when
// GATELOG_NATS_URL is unset, so the ingestion path never has to check
// whether eventing is enabled.
type NoopPublisher struct{}

var _ Publisher = (*NoopPublisher)(nil)

func (n *NoopPublisher) Publish(ctx context.Context, topic string, event any) error {
	return nil
}

func (n *NoopPublisher) Close() error {
	return nil
}
