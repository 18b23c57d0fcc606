package schedules

import (
	"context"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/integrations/notifications"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	List(ctx context.Context, filter domain.SchedulesFilter) ([]*domain.Schedule, error)
	TransitionStatus(ctx context.Context, id int64, next domain.ScheduleStatus) error
	SoftDelete(ctx context.Context, id int64) error
}

// ServicePointRepository интерфейс репозитория сервисных точек
type ServicePointRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServicePoint, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, key notifications.RoutingKey, payload interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
