package create_service_point

import (
	"context"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/service/servicepoints/models"
)

type ServicePointService interface {
	Create(ctx context.Context, actor domain.Actor, req *models.CreateServicePointRequest) (*models.ServicePointResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
