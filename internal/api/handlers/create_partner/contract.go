package create_partner

import (
	"context"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/service/partners/models"
)

type PartnerService interface {
	Create(ctx context.Context, actor domain.Actor, req *models.CreatePartnerRequest) (*models.PartnerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
