package get_service_point_bookings

import (
	"context"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/service/bookings/models"
)

type BookingService interface {
	GetServicePointBookings(ctx context.Context, actor domain.Actor, req *models.GetServicePointBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
