package usecases

import (
	"context"
	"log/slog"
	"strings"

	"sensor-logger/internal/infra/async"
	"sensor-logger/internal/infra/mqtt"
	"sensor-logger/internal/sensorlog/domain"
)

// TopicPrefix is the MQTT topic under which readings are forwarded.
type TopicPrefix string

func NewForwardWorker(broker async.InternalBroker, client mqtt.Client, prefix TopicPrefix) *ForwardWorker {
	return &ForwardWorker{
		broker: broker,
		client: client,
		prefix: strings.TrimSuffix(string(prefix), "/"),
	}
}

var _ async.Worker = &ForwardWorker{}

// ForwardWorker mirrors every logged reading to MQTT as <prefix>/<sensor id>.
type ForwardWorker struct {
	broker async.InternalBroker
	client mqtt.Client
	prefix string
}

func (w *ForwardWorker) Run(ctx context.Context, done func()) {
	defer done()

	subscription, err := w.broker.Subscribe(TopicReadingLogged)
	if err != nil {
		slog.Error("subscribing to logged readings", slog.Any("error", err))
		return
	}
	defer w.broker.Unsubscribe(TopicReadingLogged, subscription)

	slog.Debug("forward worker started", slog.String("prefix", w.prefix))

	for {
		select {
		case <-ctx.Done():
			slog.Info("forward worker cancelled")
			return
		case msg := <-subscription.Receiver:
			w.forward(msg)
		}
	}
}

func (w *ForwardWorker) forward(msg async.BrokerMessage) {
	reading, ok := msg.Value.(domain.LoggedReading)
	if !ok {
		slog.Warn("unexpected message on logged readings topic", slog.String("event", msg.Event))
		return
	}

	topic := w.TopicFor(reading.SensorID)
	if err := w.client.Publish(topic, reading); err != nil {
		slog.Error("forwarding reading",
			slog.String("sensor_id", reading.SensorID.String()),
			slog.String("topic", topic),
			slog.Any("error", err),
		)
		return
	}

	slog.Debug("reading forwarded", slog.String("topic", topic))
}

func (w *ForwardWorker) TopicFor(id domain.SensorID) string {
	if w.prefix == "" {
		return id.String()
	}
	return w.prefix + "/" + id.String()
}

func (w *ForwardWorker) Shutdown() {
	slog.Info("forward worker shutdown")
	w.client.Disconnect()
}
