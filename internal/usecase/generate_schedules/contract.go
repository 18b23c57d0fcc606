package generate_schedules

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// ServicePointRepository интерфейс репозитория сервисных точек
type ServicePointRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServicePoint, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	CreateBatch(ctx context.Context, schedules []*domain.Schedule) (int64, error)
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	RecordSchedulesGenerated(count int64)
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
