package servicepoints

import (
	"context"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// ServicePointRepository интерфейс репозитория сервисных точек
type ServicePointRepository interface {
	Create(ctx context.Context, sp *domain.ServicePoint) (*domain.ServicePoint, error)
	GetByID(ctx context.Context, id int64) (*domain.ServicePoint, error)
	List(ctx context.Context, filter domain.ServicePointsFilter) ([]*domain.ServicePoint, error)
	Update(ctx context.Context, id int64, update domain.ServicePointUpdate) error
}

// PartnerRepository интерфейс репозитория партнеров
type PartnerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Partner, error)
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
