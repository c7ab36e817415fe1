// Package accessory exposes the temperature sensor logger to its host.
//
// The host constructs the accessory with New, which prepares the data
// directory and starts the ingestion listener right away. The listener lives
// as long as the accessory and is stopped with Close.
package accessory

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"sensor-logger/internal/infra/async"
	"sensor-logger/internal/infra/httpserver"
	"sensor-logger/internal/logger"
	"sensor-logger/internal/sensorlog/httpapi"
	"sensor-logger/internal/sensorlog/persistence"
	"sensor-logger/internal/sensorlog/usecases"
)

const (
	Name = "TemperatureSensorLogger"

	DefaultPort = 8080
)

type Config struct {
	Debug                bool
	ShouldSanitiseNumber bool
	DataPath             string
	Port                 int
	StrictSensorIDs      bool
	AllowedOrigins       []string
}

// Service is a capability an accessory exposes to the host.
type Service interface {
	Name() string
}

type Accessory interface {
	GetServices() []Service
}

var _ Accessory = &TemperatureSensorLogger{}

type TemperatureSensorLogger struct {
	config   Config
	log      logger.Logger
	dataPath string
	server   httpserver.Server
	addr     net.Addr
}

// New fails when the data directory cannot be created or the port cannot be
// bound. The broker may be nil when nothing consumes logged readings.
func New(config Config, log logger.Logger, broker async.InternalBroker) (*TemperatureSensorLogger, error) {
	dataPath, err := resolveDataPath(config.DataPath)
	if err != nil {
		return nil, err
	}

	dataPath, err = persistence.EnsureDataDir(dataPath)
	if err != nil {
		return nil, err
	}

	a := &TemperatureSensorLogger{
		config:   config,
		log:      log,
		dataPath: dataPath,
	}

	a.logInfo(fmt.Sprintf("Plugin initialized. Debug mode is %s.", onOff(config.Debug)))

	store := persistence.NewFileStore(dataPath)
	service := usecases.NewReadingService(store, broker, log, usecases.ReadingServiceOpts{
		ShouldSanitiseNumber: config.ShouldSanitiseNumber,
		StrictSensorIDs:      config.StrictSensorIDs,
	})
	controller := httpapi.NewReadingController(service, log, config.Debug)

	if err := a.startHTTPServer(controller); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *TemperatureSensorLogger) startHTTPServer(handler http.Handler) error {
	a.server = httpserver.NewServer(httpserver.ServerOpts{
		Addr:           fmt.Sprintf(":%d", a.config.Port),
		AllowedOrigins: a.config.AllowedOrigins,
	}, handler)

	addr, err := a.server.Start()
	if err != nil {
		return err
	}
	a.addr = addr

	a.log.Infow(Name+" HTTP Server is running", "port", a.Port())
	return nil
}

func (a *TemperatureSensorLogger) logInfo(message string) {
	if a.config.Debug {
		a.log.Infow(message)
	}
}

// GetServices reports no services: the logger only ingests readings.
func (a *TemperatureSensorLogger) GetServices() []Service {
	return []Service{}
}

// Port is the port the listener is bound to.
func (a *TemperatureSensorLogger) Port() int {
	if tcpAddr, ok := a.addr.(*net.TCPAddr); ok {
		return tcpAddr.Port
	}
	return a.config.Port
}

func (a *TemperatureSensorLogger) DataPath() string {
	return a.dataPath
}

func (a *TemperatureSensorLogger) Close(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

// resolveDataPath defaults to a data directory next to the installation
// directory of the executable.
func resolveDataPath(dataPath string) (string, error) {
	if dataPath != "" {
		return dataPath, nil
	}

	executable, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}

	return filepath.Join(filepath.Dir(executable), "..", "data"), nil
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
