package bus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpr-relay/internal/domain/lpr"
)

func TestPublisherRoundTrip(t *testing.T) {
	pub, sub := NewChannel(zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := sub.Subscribe(ctx, "lpr_data")
	require.NoError(t, err)

	confidence := 0.97
	sent := lpr.Event{
		PlateNum:     "ABC123",
		CarLogo:      "Toyota1",
		Confidence:   &confidence,
		CamIP:        "10.0.0.5",
		VehicleBrand: "Toyota1",
		VehicleColor: "red",
	}

	publisher := NewPublisher(pub, "lpr_data")
	require.NoError(t, publisher.Publish(ctx, sent))

	select {
	case msg := <-messages:
		var got lpr.Event
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, sent.PlateNum, got.PlateNum)
		assert.Equal(t, sent.CarLogo, got.CarLogo)
		require.NotNil(t, got.Confidence)
		assert.Equal(t, 0.97, *got.Confidence)
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("no message received on lpr_data")
	}
}

func TestPublisherOmitsAbsentConfidence(t *testing.T) {
	pub, sub := NewChannel(zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := sub.Subscribe(ctx, "lpr_data")
	require.NoError(t, err)

	publisher := NewPublisher(pub, "lpr_data")
	require.NoError(t, publisher.Publish(ctx, lpr.Event{PlateNum: "XYZ9", CarLogo: "Ford"}))

	select {
	case msg := <-messages:
		assert.NotContains(t, string(msg.Payload), "confidence")
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("no message received on lpr_data")
	}
}

func TestPublisherReportsFailure(t *testing.T) {
	publisher := NewPublisher(failingPublisher{}, "lpr_data")

	err := publisher.Publish(context.Background(), lpr.Event{PlateNum: "ABC123", CarLogo: "Toyota1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lpr_data")
}

type failingPublisher struct{}

func (failingPublisher) Publish(topic string, messages ...*message.Message) error {
	return errors.New("bus unreachable")
}

func (failingPublisher) Close() error { return nil }
