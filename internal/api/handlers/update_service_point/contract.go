package update_service_point

import (
	"context"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/service/servicepoints/models"
)

type ServicePointService interface {
	Update(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateServicePointRequest) (*models.ServicePointResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
