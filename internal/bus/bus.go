// Package bus wraps the watermill publish/subscribe primitives used to fan
// out canonical LPR events. Production runs on core NATS; tests use the
// in-memory Go channel pubsub.
package bus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"lpr-relay/internal/domain/lpr"
)

// NewNATSPublisher connects to core NATS for publishing. Core NATS gives
// at-most-once fan-out with no replay and no acks; slow or absent
// subscribers simply miss messages.
func NewNATSPublisher(url, clientName string, log zerolog.Logger) (message.Publisher, error) {
	pub, err := wmnats.NewPublisher(
		wmnats.PublisherConfig{
			URL:         url,
			NatsOptions: []nc.Option{nc.Name(clientName)},
			Marshaler:   &wmnats.NATSMarshaler{},
			JetStream:   wmnats.JetStreamConfig{Disabled: true},
		},
		NewWatermillLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("connect NATS publisher: %w", err)
	}
	return pub, nil
}

// NewNATSSubscriber connects to core NATS for subscribing.
func NewNATSSubscriber(url, clientName string, log zerolog.Logger) (message.Subscriber, error) {
	sub, err := wmnats.NewSubscriber(
		wmnats.SubscriberConfig{
			URL:         url,
			NatsOptions: []nc.Option{nc.Name(clientName)},
			Unmarshaler: &wmnats.NATSMarshaler{},
			JetStream:   wmnats.JetStreamConfig{Disabled: true},
		},
		NewWatermillLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("connect NATS subscriber: %w", err)
	}
	return sub, nil
}

// NewChannel returns an in-process pubsub backed by Go channels.
func NewChannel(log zerolog.Logger) (message.Publisher, message.Subscriber) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, NewWatermillLogger(log))
	return pubSub, pubSub
}

// Publisher serializes canonical events and sends them to a fixed topic. It
// is safe for concurrent use; each publish is an independent send.
type Publisher struct {
	pub   message.Publisher
	topic string
}

func NewPublisher(pub message.Publisher, topic string) *Publisher {
	return &Publisher{pub: pub, topic: topic}
}

func (p *Publisher) Publish(ctx context.Context, ev lpr.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := p.pub.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}
	return nil
}
