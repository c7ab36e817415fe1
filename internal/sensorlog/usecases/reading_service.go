package usecases

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"sensor-logger/internal/infra/async"
	"sensor-logger/internal/logger"
	"sensor-logger/internal/sensorlog/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	TopicReadingLogged async.BrokerTopicName = "reading_logged"
	EventReadingLogged string                = "reading_logged"

	_instrumentationName = "sensor-logger"

	_resultLogged   = "logged"
	_resultRejected = "rejected"
	_resultFailed   = "failed"
)

type ReadingServiceOpts struct {
	ShouldSanitiseNumber bool
	StrictSensorIDs      bool
}

func NewReadingService(
	store ReadingStore,
	broker async.InternalBroker,
	log logger.Logger,
	opts ReadingServiceOpts,
) *SimpleReadingService {
	meter := otel.Meter(_instrumentationName)

	// Instrument creation only fails on invalid names.
	readingsCounter, _ := meter.Int64Counter(
		"sensor_logger.readings.total",
		metric.WithDescription("Total number of readings received, by result"),
	)
	temperatureGauge, _ := meter.Float64Gauge(
		"sensor_logger.sensor.temperature",
		metric.WithDescription("Latest numeric temperature logged per sensor"),
	)

	return &SimpleReadingService{
		store:            store,
		broker:           broker,
		log:              log,
		opts:             opts,
		now:              time.Now,
		readingsCounter:  readingsCounter,
		temperatureGauge: temperatureGauge,
	}
}

var _ ReadingService = &SimpleReadingService{}

type SimpleReadingService struct {
	store            ReadingStore
	broker           async.InternalBroker
	log              logger.Logger
	opts             ReadingServiceOpts
	now              func() time.Time
	readingsCounter  metric.Int64Counter
	temperatureGauge metric.Float64Gauge
}

func (s *SimpleReadingService) LogReading(ctx context.Context, reading domain.Reading) error {
	ctx, span := otel.Tracer(_instrumentationName).Start(ctx, "reading.log",
		trace.WithAttributes(attribute.String("sensor.id", reading.SensorID.String())),
	)
	defer span.End()

	reading, err := s.prepare(reading)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.countResult(ctx, _resultRejected)
		return err
	}

	if err := s.store.Store(ctx, reading); err != nil {
		s.log.Errorw("Error writing the file for sensor",
			"sensor_id", reading.SensorID.String(),
			"error", err,
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, "writing reading")
		s.countResult(ctx, _resultFailed)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.log.Infow("Data for sensor logged successfully",
		"sensor_id", reading.SensorID.String(),
		"temperature", reading.Temperature.String(),
	)
	s.countResult(ctx, _resultLogged)
	s.recordTemperature(ctx, reading)
	s.publish(ctx, reading)

	return nil
}

func (s *SimpleReadingService) prepare(reading domain.Reading) (domain.Reading, error) {
	if s.opts.ShouldSanitiseNumber {
		temperature, err := domain.SanitiseNumber(reading.Temperature)
		if err != nil {
			return domain.Reading{}, err
		}
		reading.Temperature = temperature
	}

	if s.opts.StrictSensorIDs {
		if err := reading.SensorID.Validate(); err != nil {
			return domain.Reading{}, err
		}
	}

	return reading, nil
}

func (s *SimpleReadingService) countResult(ctx context.Context, result string) {
	s.readingsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (s *SimpleReadingService) recordTemperature(ctx context.Context, reading domain.Reading) {
	value, err := strconv.ParseFloat(reading.Temperature.String(), 64)
	if err != nil {
		return
	}

	s.temperatureGauge.Record(ctx, value, metric.WithAttributes(attribute.String("sensor.id", reading.SensorID.String())))
}

// publish notifies in-process subscribers. Nobody listening is not an error.
func (s *SimpleReadingService) publish(ctx context.Context, reading domain.Reading) {
	if s.broker == nil {
		return
	}

	msg := async.BrokerMessage{
		Event: EventReadingLogged,
		Value: domain.LoggedReading{
			SensorID:    reading.SensorID,
			Temperature: reading.Temperature,
			LoggedAt:    s.now().UTC(),
		},
	}

	err := s.broker.Publish(ctx, TopicReadingLogged, msg)
	if err != nil && !errors.Is(err, async.ErrTopicNotFound) {
		s.log.Warnw("publishing logged reading", "sensor_id", reading.SensorID.String(), "error", err)
	}
}
