package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"lpr-relay/internal/domain/lpr"
	"lpr-relay/internal/metrics"
	"lpr-relay/internal/validate"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrPublish      = errors.New("publish failed")
	ErrForward      = errors.New("forward failed")
)

// Fixed tags on every collector event. Real values would need richer sensor
// data than the cameras currently send.
const (
	vehicleType       = "car"
	vehiclePlateColor = "unknown"
	vehicleModel      = "unknown"
	coordinates       = "0,0,0,0"
	executionTime     = 0
)

type Publisher interface {
	Publish(ctx context.Context, ev lpr.Event) error
}

type Forwarder interface {
	Forward(ctx context.Context, ev lpr.CollectorEvent) error
}

// LPRService runs the ingest pipeline: validate, sanitize, build the
// canonical event, publish it on the bus and optionally forward a normalized
// copy to the external collector. It holds no per-request state and is safe
// for concurrent use.
type LPRService struct {
	publisher  Publisher
	forwarder  Forwarder // nil disables forwarding
	systemName string
	log        zerolog.Logger

	now   func() time.Time
	newID func() string
}

func NewLPRService(publisher Publisher, forwarder Forwarder, systemName string, log zerolog.Logger) *LPRService {
	return &LPRService{
		publisher:  publisher,
		forwarder:  forwarder,
		systemName: systemName,
		log:        log,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// ProcessSubmission handles one /lpr request end to end. Validation failures
// abort before any I/O. A publish that succeeds followed by a forward
// failure still returns an error even though the bus message is already out;
// downstream consumers will have seen the event.
func (s *LPRService) ProcessSubmission(ctx context.Context, sub lpr.Submission) error {
	if !validate.Plate(sub.PlateNumber) {
		return fmt.Errorf("%w: Invalid or missing plate number", ErrInvalidInput)
	}
	if !validate.Logo(sub.CarLogo) {
		return fmt.Errorf("%w: Invalid or missing car logo", ErrInvalidInput)
	}

	confidence := validate.Confidence(sub.Confidence)
	event := s.buildEvent(sub, confidence)

	logEvent := s.log.Info().
		Str("plate_num", event.PlateNum).
		Str("car_logo", event.CarLogo).
		Str("cam_ip", event.CamIP)
	if confidence != nil {
		logEvent = logEvent.Float64("confidence", *confidence)
	}
	logEvent.Msg("received LPR submission")
	metrics.SubmissionsReceived.Inc()

	if err := s.publisher.Publish(ctx, event); err != nil {
		metrics.PublishFailures.Inc()
		s.log.Error().Err(err).Str("plate_num", event.PlateNum).Msg("failed to publish LPR event")
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	metrics.EventsPublished.Inc()

	if s.forwarder != nil {
		if err := s.forwarder.Forward(ctx, s.buildCollectorEvent(event)); err != nil {
			metrics.ForwardFailures.Inc()
			s.log.Error().Err(err).Str("plate_num", event.PlateNum).Msg("failed to forward event to collector")
			return fmt.Errorf("%w: %v", ErrForward, err)
		}
		metrics.EventsForwarded.Inc()
	}

	return nil
}

func (s *LPRService) buildEvent(sub lpr.Submission, confidence *float64) lpr.Event {
	logo := validate.Sanitize(sub.CarLogo)
	return lpr.Event{
		PlateNum:     validate.Sanitize(sub.PlateNumber),
		CarLogo:      logo,
		Confidence:   confidence,
		CamIP:        validate.Sanitize(sub.CameraIP),
		VehicleBrand: logo,
		VehicleColor: validate.Sanitize(sub.VehicleColor),
	}
}

func (s *LPRService) buildCollectorEvent(event lpr.Event) lpr.CollectorEvent {
	now := s.now()
	return lpr.CollectorEvent{
		EventTimestamp:      now.UTC().Format(time.RFC3339),
		CameraIP:            event.CamIP,
		VehiclePlateNumber:  event.PlateNum,
		ImageURL:            s.imageURL(event.PlateNum, now),
		SystemName:          s.systemName,
		VehicleType:         vehicleType,
		VehicleBrand:        event.VehicleBrand,
		VehicleColor:        event.VehicleColor,
		VehiclePlateColor:   vehiclePlateColor,
		Confidence:          event.Confidence,
		ExecutionTime:       executionTime,
		Coordinates:         coordinates,
		VehicleModel:        vehicleModel,
		EngineLprExternalID: s.newID(),
	}
}

// imageURL synthesizes a snapshot reference from the plate and the local
// date. The cameras do not upload snapshots yet, so this is a stable
// placeholder rather than a fetchable image.
func (s *LPRService) imageURL(plate string, now time.Time) string {
	return fmt.Sprintf("http://images.local/lpr/%s_%s.jpg", plate, now.Format("2006-01-02"))
}
