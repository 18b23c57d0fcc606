package bookings

import (
	"context"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/integrations/notifications"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	TransitionStatus(ctx context.Context, id int64, next domain.BookingStatus, reason *string) error
}

// ServicePointRepository интерфейс репозитория сервисных точек
type ServicePointRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServicePoint, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	TransitionStatus(ctx context.Context, id int64, next domain.ScheduleStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, key notifications.RoutingKey, payload interface{}) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	RecordBooking(action, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
