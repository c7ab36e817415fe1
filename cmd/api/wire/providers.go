package wire

import (
	"sensor-logger/cmd/config"
	"sensor-logger/internal/accessory"
	"sensor-logger/internal/infra/mqtt"
	"sensor-logger/internal/infra/node"
	"sensor-logger/internal/logger"
	"sensor-logger/internal/sensorlog/usecases"
)

func provideAccessoryConfig(appConfig config.AppConfig) accessory.Config {
	return accessory.Config{
		Debug:                appConfig.Accessory.Debug,
		ShouldSanitiseNumber: appConfig.Accessory.ShouldSanitiseNumber,
		DataPath:             appConfig.Accessory.DataPath,
		Port:                 appConfig.Accessory.Port,
		StrictSensorIDs:      appConfig.Accessory.StrictSensorIDs,
		AllowedOrigins:       appConfig.Server.CORSAllowedOrigins,
	}
}

func provideLogger(appConfig config.AppConfig) (logger.Logger, error) {
	return logger.NewDefaultLogger(accessory.Name, appConfig.General.LogLevel)
}

func provideMQTTClient(appConfig config.AppConfig) (mqtt.Client, error) {
	client, err := mqtt.NewSimpleClient(mqtt.SimpleClientOpts{
		Broker:   appConfig.MQTTClient.Broker,
		ClientID: node.GetNodeInfo().ClientID(appConfig.MQTTClient.ClientID),
		Username: appConfig.MQTTClient.Username,
		Password: appConfig.MQTTClient.Password, //pragma: allowlist secret
		Retained: true,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func provideTopicPrefix(appConfig config.AppConfig) usecases.TopicPrefix {
	return usecases.TopicPrefix(appConfig.MQTTClient.TopicPrefix)
}
