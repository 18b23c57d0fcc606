package list_service_points

import (
	"context"

	"github.com/m04kA/SMC-TireService/internal/service/servicepoints/models"
)

type ServicePointService interface {
	List(ctx context.Context, req *models.ListServicePointsRequest) (*models.ServicePointListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
