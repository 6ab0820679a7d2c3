// Package subscriber consumes canonical LPR events from the bus and logs
// them. It is the downstream half of the relay and runs as its own process.
package subscriber

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"lpr-relay/internal/domain/lpr"
	"lpr-relay/internal/metrics"
)

type Listener struct {
	sub   message.Subscriber
	topic string
	log   zerolog.Logger
}

func NewListener(sub message.Subscriber, topic string, log zerolog.Logger) *Listener {
	return &Listener{
		sub:   sub,
		topic: topic,
		log:   log,
	}
}

// Run blocks consuming the topic until ctx is cancelled or the subscription
// channel closes. Malformed messages are logged and skipped; they never
// terminate the loop.
func (l *Listener) Run(ctx context.Context) error {
	messages, err := l.sub.Subscribe(ctx, l.topic)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", l.topic, err)
	}

	l.log.Info().Str("topic", l.topic).Msg("subscribed, waiting for messages")

	for msg := range messages {
		l.handle(msg)
		msg.Ack()
	}
	return nil
}

func (l *Listener) handle(msg *message.Message) {
	var ev lpr.Event
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		metrics.EventsConsumed.WithLabelValues("decode_error").Inc()
		l.log.Error().Err(err).Str("message_id", msg.UUID).Msg("failed to decode LPR message")
		return
	}

	if ev.PlateNum == "" || ev.CarLogo == "" {
		metrics.EventsConsumed.WithLabelValues("incomplete").Inc()
		l.log.Warn().Str("message_id", msg.UUID).Msg("received incomplete LPR event")
		return
	}

	metrics.EventsConsumed.WithLabelValues("ok").Inc()
	logEvent := l.log.Info().
		Str("plate_num", ev.PlateNum).
		Str("car_logo", ev.CarLogo)
	if ev.Confidence != nil {
		logEvent = logEvent.Float64("confidence", *ev.Confidence)
	}
	logEvent.Msg("received LPR event")
}
