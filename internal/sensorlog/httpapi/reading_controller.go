package httpapi

import (
	"errors"
	"net/http"

	"sensor-logger/internal/infra/httpserver"
	"sensor-logger/internal/logger"
	"sensor-logger/internal/sensorlog/domain"
	"sensor-logger/internal/sensorlog/usecases"

	"go.opentelemetry.io/otel/attribute"
)

const (
	dataLoggedMessage          = "Data logged"
	badRequestMessage          = "Bad Request"
	notFoundMessage            = "Not Found"
	internalServerErrorMessage = "Internal Server Error"
)

func NewReadingController(service usecases.ReadingService, log logger.Logger, debug bool) *ReadingController {
	return &ReadingController{
		service: service,
		log:     log,
		debug:   debug,
	}
}

var _ http.Handler = &ReadingController{}

// ReadingController answers every path itself and is served without a mux, so
// unclean paths such as //a reach it unchanged. Readings are accepted on any
// path and any other method is answered with 404.
type ReadingController struct {
	service usecases.ReadingService
	log     logger.Logger
	debug   bool
}

func (c *ReadingController) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpserver.ReplyText(w, http.StatusNotFound, notFoundMessage)
		return
	}

	body, err := httpserver.ReadBody(r)
	if err != nil {
		c.log.Errorw("Error reading request body", "error", err)
		httpserver.ReplyText(w, http.StatusBadRequest, badRequestMessage)
		return
	}

	raw, err := domain.DecodeRawReading(body)
	if err != nil {
		c.log.Errorw("Error parsing JSON", "error", err)
		httpserver.ReplyText(w, http.StatusBadRequest, badRequestMessage)
		return
	}

	if c.debug {
		c.log.Infow("Received data", "data", string(body))
	}

	reading, err := raw.Reading()
	if err != nil {
		c.log.Errorw("Error parsing JSON", "error", err)
		httpserver.ReplyText(w, http.StatusBadRequest, badRequestMessage)
		return
	}

	span := httpserver.GetSpanFromContext(r)
	span.SetAttributes(attribute.String("sensor.id", reading.SensorID.String()))

	err = c.service.LogReading(r.Context(), reading)
	switch {
	case err == nil:
		httpserver.ReplyText(w, http.StatusOK, dataLoggedMessage)
	case errors.Is(err, domain.ErrValidation):
		c.log.Errorw("Error parsing JSON", "error", err)
		httpserver.ReplyText(w, http.StatusBadRequest, badRequestMessage)
	default:
		httpserver.ReplyText(w, http.StatusInternalServerError, internalServerErrorMessage)
	}
}
