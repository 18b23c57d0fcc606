package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/service/bookings/models"
)

type BookingService interface {
	Cancel(ctx context.Context, actor domain.Actor, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
