package usecases

import (
	"context"

	"sensor-logger/internal/sensorlog/domain"
)

//go:generate mockgen -source=./repository_port.go -destination=../../../test/unit/doubles/sensorlog/usecases/repository_port.go

type ReadingStore interface {
	Store(context.Context, domain.Reading) error
}
