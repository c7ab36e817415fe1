//go:build wireinject
// +build wireinject

package wire

import (
	"sensor-logger/cmd/config"
	"sensor-logger/internal/accessory"
	"sensor-logger/internal/infra/async"
	"sensor-logger/internal/sensorlog/usecases"

	"github.com/google/wire"
)

func InitializeTemperatureSensorLogger(appConfig config.AppConfig, broker async.InternalBroker) (*accessory.TemperatureSensorLogger, error) {
	wire.Build(
		provideAccessoryConfig,
		provideLogger,
		accessory.New,
	)
	return nil, nil
}

func InitializeForwardWorker(appConfig config.AppConfig, broker async.InternalBroker) (*usecases.ForwardWorker, error) {
	wire.Build(
		provideMQTTClient,
		provideTopicPrefix,
		usecases.NewForwardWorker,
	)
	return nil, nil
}
