package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var loadConfigOnce sync.Once
var configInstance AppConfig

// LoadConfig reads the process configuration once. Flags win over the
// environment, which wins over the config file.
func LoadConfig() AppConfig {
	loadConfigOnce.Do(func() {
		var err error
		configInstance, err = Load(viper.GetViper(), pflag.CommandLine, os.Args[1:], "config", "/config")
		if err != nil {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	})

	return configInstance
}

func Load(v *viper.Viper, flags *pflag.FlagSet, args []string, configPaths ...string) (AppConfig, error) {
	setDefaults(v)
	if err := bindFlags(v, flags, args); err != nil {
		return AppConfig{}, err
	}

	v.SetEnvPrefix("sensor_logger")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigName("sensor-logger")
	for _, path := range configPaths {
		v.AddConfigPath(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return AppConfig{}, err
		}
	}

	config := AppConfig{
		General: GeneralConfig{
			LogLevel: v.GetString("general.log_level"),
		},
		Accessory: AccessoryConfig{
			Debug:                v.GetBool("accessory.debug"),
			ShouldSanitiseNumber: v.GetBool("accessory.should_sanitise_number"),
			DataPath:             v.GetString("accessory.data_path"),
			Port:                 v.GetInt("accessory.port"),
			StrictSensorIDs:      v.GetBool("accessory.strict_sensor_ids"),
		},
		Server: ServerConfig{
			CORSAllowedOrigins: v.GetStringSlice("server.cors_allowed_origins"),
		},
		Admin: AdminConfig{
			Addr: v.GetString("admin.addr"),
		},
		MQTTClient: MQTTClientConfig{
			Broker:      v.GetString("mqtt.broker"),
			ClientID:    v.GetString("mqtt.client_id"),
			Username:    v.GetString("mqtt.username"),
			Password:    v.GetString("mqtt.password"),
			TopicPrefix: v.GetString("mqtt.topic_prefix"),
		},
		Telemetry: TelemetryConfig{
			OtelcolEndpoint: v.GetString("telemetry.otelcol_endpoint"),
		},
	}

	if config.Accessory.Port < 0 || config.Accessory.Port > 65535 {
		return AppConfig{}, fmt.Errorf("invalid port %d: must be between 0 and 65535", config.Accessory.Port)
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.log_level", "info")
	v.SetDefault("accessory.debug", false)
	v.SetDefault("accessory.should_sanitise_number", false)
	v.SetDefault("accessory.data_path", "")
	v.SetDefault("accessory.port", 8080)
	v.SetDefault("accessory.strict_sensor_ids", false)
	v.SetDefault("server.cors_allowed_origins", []string{})
	v.SetDefault("admin.addr", "")
	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.client_id", "sensor-logger")
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")
	v.SetDefault("mqtt.topic_prefix", "sensors")
	v.SetDefault("telemetry.otelcol_endpoint", "")
}

var flagKeys = map[string]string{
	"log-level":         "general.log_level",
	"debug":             "accessory.debug",
	"sanitise-number":   "accessory.should_sanitise_number",
	"data-path":         "accessory.data_path",
	"port":              "accessory.port",
	"strict-sensor-ids": "accessory.strict_sensor_ids",
	"admin-addr":        "admin.addr",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, args []string) error {
	if flags.Lookup("port") == nil {
		flags.String("log-level", "info", "log level (debug, info, warn, error)")
		flags.Bool("debug", false, "log every received reading")
		flags.Bool("sanitise-number", false, "extract the number from the temperature text")
		flags.String("data-path", "", "directory where sensor files are written")
		flags.Int("port", 8080, "port of the ingestion listener")
		flags.Bool("strict-sensor-ids", false, "reject sensor ids that could escape the data directory")
		flags.String("admin-addr", "", "address of the health and metrics listener")
	}

	if err := flags.Parse(args); err != nil {
		return err
	}

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}

	return nil
}

type AppConfig struct {
	General    GeneralConfig
	Accessory  AccessoryConfig
	Server     ServerConfig
	Admin      AdminConfig
	MQTTClient MQTTClientConfig
	Telemetry  TelemetryConfig
}

type GeneralConfig struct {
	LogLevel string
}

type AccessoryConfig struct {
	Debug                bool
	ShouldSanitiseNumber bool
	DataPath             string
	Port                 int
	StrictSensorIDs      bool
}

type ServerConfig struct {
	CORSAllowedOrigins []string
}

type AdminConfig struct {
	Addr string
}

type MQTTClientConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
}

type TelemetryConfig struct {
	OtelcolEndpoint string
}
