package timeslots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// TimeSlotRepository интерфейс репозитория слотов
type TimeSlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	ListByServicePoint(ctx context.Context, servicePointID int64, day *time.Weekday) ([]*domain.TimeSlot, error)
	Update(ctx context.Context, id int64, update domain.TimeSlotUpdate) error
}

// ServicePointRepository интерфейс репозитория сервисных точек
type ServicePointRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServicePoint, error)
}

// Cache интерфейс кеша чтения
type Cache interface {
	Get(ctx context.Context, key string, out interface{}) bool
	Set(ctx context.Context, key string, value interface{})
	Delete(ctx context.Context, keys ...string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
