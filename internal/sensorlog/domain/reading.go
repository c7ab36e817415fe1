package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const sensorFileExtension = ".txt"

type SensorID string

func (id SensorID) String() string {
	return string(id)
}

// FileName is the name of the file holding the latest value of the sensor.
func (id SensorID) FileName() string {
	return string(id) + sensorFileExtension
}

// Validate rejects identifiers that cannot be used as a single file name
// inside the data directory.
func (id SensorID) Validate() error {
	if id == "" {
		return fmt.Errorf("%w: sensor id is empty", ErrValidation)
	}
	if strings.ContainsAny(string(id), "/\\\x00") {
		return fmt.Errorf("%w: sensor id %q contains a path separator", ErrValidation, string(id))
	}
	return nil
}

type Temperature string

func (t Temperature) String() string {
	return string(t)
}

type Reading struct {
	SensorID    SensorID
	Temperature Temperature
}

// LoggedReading is a reading that has been persisted.
type LoggedReading struct {
	SensorID    SensorID    `json:"id"`
	Temperature Temperature `json:"temperature"`
	LoggedAt    time.Time   `json:"logged_at"`
}

const (
	idField          = "id"
	temperatureField = "temperature"
)

// RawReading is a decoded request body whose fields have not been checked yet.
type RawReading map[string]JSONValue

// DecodeRawReading fails only when the body is not a JSON object.
func DecodeRawReading(body []byte) (RawReading, error) {
	var fields RawReading
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%w: decoding body: %w", ErrValidation, err)
	}
	return fields, nil
}

// Reading requires both an id and a temperature; each is coerced to its text
// form.
func (r RawReading) Reading() (Reading, error) {
	id, hasID := r[idField]
	temperature, hasTemperature := r[temperatureField]
	if !hasID || !hasTemperature {
		return Reading{}, fmt.Errorf("%w: missing 'id' or 'temperature' in request body", ErrValidation)
	}

	temperatureText, err := temperature.Text()
	if err != nil {
		return Reading{}, fmt.Errorf("temperature: %w", err)
	}

	idText, err := id.Text()
	if err != nil {
		return Reading{}, fmt.Errorf("id: %w", err)
	}

	return Reading{
		SensorID:    SensorID(idText),
		Temperature: Temperature(temperatureText),
	}, nil
}

// ParseReading decodes and checks a request body in one step.
func ParseReading(body []byte) (Reading, error) {
	raw, err := DecodeRawReading(body)
	if err != nil {
		return Reading{}, err
	}
	return raw.Reading()
}
