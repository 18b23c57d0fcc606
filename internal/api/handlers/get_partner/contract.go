package get_partner

import (
	"context"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/service/partners/models"
)

type PartnerService interface {
	GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.PartnerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
