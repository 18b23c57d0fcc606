package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/pkg/types"
)

// ServicePointRepository интерфейс репозитория сервисных точек
type ServicePointRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServicePoint, error)
}

// TimeSlotRepository интерфейс репозитория слотов
type TimeSlotRepository interface {
	FindCovering(ctx context.Context, servicePointID int64, day time.Weekday, at types.TimeString) (*domain.TimeSlot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountActiveInRange(ctx context.Context, servicePointID int64, date time.Time, from, to types.TimeString) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
