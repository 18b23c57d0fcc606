package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/integrations/notifications"
	"github.com/m04kA/SMC-TireService/internal/integrations/userservice"
	"github.com/m04kA/SMC-TireService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-TireService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ServicePointRepository интерфейс репозитория сервисных точек
type ServicePointRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServicePoint, error)
}

// ScheduleRepository интерфейс репозитория расписания постов
type ScheduleRepository interface {
	FindAvailable(ctx context.Context, servicePointID int64, date time.Time, start types.TimeString) (*domain.Schedule, error)
	CountByStart(ctx context.Context, servicePointID int64, date time.Time, start types.TimeString) (int, error)
	TransitionStatus(ctx context.Context, id int64, next domain.ScheduleStatus) error
}

// AvailabilityChecker проверка свободного места в слоте
type AvailabilityChecker interface {
	IsSlotAvailable(ctx context.Context, servicePointID int64, date time.Time, at types.TimeString) (*check_availability.Result, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий после фиксации транзакции
type EventPublisher interface {
	Publish(ctx context.Context, key notifications.RoutingKey, payload interface{}) error
}

// CarProvider выбранный автомобиль клиента из UserService
type CarProvider interface {
	GetSelectedCarWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.Car, error)
}

// Metrics метрики бронирований
type Metrics interface {
	RecordBooking(action, result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
