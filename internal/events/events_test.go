package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/groblegark/gatelog/internal/model"
)

func TestNoopPublisher_Publish(t *testing.T) {
	pub := &NoopPublisher{}
	err := pub.Publish(context.Background(), TopicEntryRecorded, EntryRecorded{})
	if err != nil {
		t.Fatalf("NoopPublisher.Publish returned unexpected error: %v", err)
	}
}

func TestNoopPublisher_Close(t *testing.T) {
	pub := &NoopPublisher{}
	if err := pub.Close(); err != nil {
		t.Fatalf("NoopPublisher.Close returned unexpected error: %v", err)
	}
}

func TestNoopPublisher_ImplementsPublisher(t *testing.T) {
	var _ Publisher = (*NoopPublisher)(nil)
}

func TestNATSPublisher_ImplementsPublisher(t *testing.T) {
	var _ Publisher = (*NATSPublisher)(nil)
}

func TestNATSPublisher_Publish(t *testing.T) {
	url := startTestNATS(t)

	pub, err := NewNATSPublisher(url)
	if err != nil {
		t.Fatalf("creating publisher: %v", err)
	}
	defer pub.Close()

	// Subscribe to capture published messages.
	nc, err := nats.Connect(url)
	if err != nil {
		t.Fatalf("connecting subscriber: %v", err)
	}
	defer nc.Close()

	ch := make(chan *nats.Msg, 1)
	sub, err := nc.ChanSubscribe(TopicEntryRecorded, ch)
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	defer sub.Unsubscribe() //nolint:errcheck
	nc.Flush()

	laptop := "Dell"
	event := EntryRecorded{Event: &model.Event{
		ID:        1,
		Roll:      "1001",
		Kind:      model.KindEntry,
		EventTime: time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC),
		Laptop:    &laptop,
	}}
	if err := pub.Publish(context.Background(), TopicEntryRecorded, event); err != nil {
		t.Fatalf("publishing: %v", err)
	}
	pub.conn.Flush()

	select {
	case msg := <-ch:
		var got EntryRecorded
		if err := json.Unmarshal(msg.Data, &got); err != nil {
			t.Fatalf("unmarshaling payload: %v", err)
		}
		if got.Event == nil || got.Event.Roll != "1001" {
			t.Errorf("payload = %s", msg.Data)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for published message")
	}
}
