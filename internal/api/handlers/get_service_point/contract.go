package get_service_point

import (
	"context"

	"github.com/m04kA/SMC-TireService/internal/service/servicepoints/models"
)

type ServicePointService interface {
	GetByID(ctx context.Context, id int64) (*models.ServicePointResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
