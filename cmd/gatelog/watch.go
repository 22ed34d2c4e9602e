package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/groblegark/gatelog/internal/events"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Stream gate events live from the event bus",
	GroupID: "system",
	Args:    cobra.NoArgs,
	// Events come straight from NATS, no API client needed.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")

		natsURL := os.Getenv("GATELOG_NATS_URL")
		if natsURL == "" {
			natsURL = activeRemoteNATSURL()
		}
		if natsURL == "" {
			return fmt.Errorf("no NATS URL configured; set GATELOG_NATS_URL or add one with 'gatelog remote add --nats'")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		sub, err := events.NewNATSSubscriber(natsURL,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				log.Printf("nats: disconnected: %v", err)
			}),
			nats.ReconnectHandler(func(_ *nats.Conn) {
				log.Printf("nats: reconnected")
			}),
		)
		if err != nil {
			return fmt.Errorf("connecting to NATS: %w", err)
		}
		defer sub.Close()

		ch, cancel, err := sub.Subscribe(topic)
		if err != nil {
			return fmt.Errorf("subscribing to events: %w", err)
		}
		defer cancel()

		fmt.Fprintf(os.Stderr, "watching %s (ctrl-c to stop)\n", topic)
		for {
			select {
			case <-ctx.Done():
				return nil
			case data, ok := <-ch:
				if !ok {
					return nil
				}
				fmt.Println(string(data))
			}
		}
	},
}

func init() {
	watchCmd.Flags().String("topic", "visits.>", "event topic pattern to subscribe to")
}
