package generate_time_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/integrations/notifications"
)

// ServicePointRepository интерфейс репозитория сервисных точек
type ServicePointRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServicePoint, error)
}

// TimeSlotRepository интерфейс репозитория слотов
type TimeSlotRepository interface {
	DeleteByDay(ctx context.Context, servicePointID int64, day time.Weekday) (int64, error)
	CreateBatch(ctx context.Context, slots []*domain.TimeSlot) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Cache интерфейс инвалидации кеша
type Cache interface {
	Delete(ctx context.Context, keys ...string)
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, key notifications.RoutingKey, payload interface{}) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	RecordTimeSlotsGenerated(weekday string, count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
