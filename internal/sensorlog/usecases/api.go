package usecases

import (
	"context"

	"sensor-logger/internal/sensorlog/domain"
)

//go:generate mockgen -source=./api.go -destination=../../../test/unit/doubles/sensorlog/usecases/api.go

type ReadingService interface {
	LogReading(context.Context, domain.Reading) error
}
