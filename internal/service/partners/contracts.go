package partners

import (
	"context"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// PartnerRepository интерфейс репозитория партнеров
type PartnerRepository interface {
	Create(ctx context.Context, partner *domain.Partner) (*domain.Partner, error)
	GetByID(ctx context.Context, id int64) (*domain.Partner, error)
	List(ctx context.Context) ([]*domain.Partner, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
