package list_time_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TireService/internal/service/timeslots/models"
)

type TimeSlotService interface {
	List(ctx context.Context, servicePointID int64, day *time.Weekday) (*models.TimeSlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
