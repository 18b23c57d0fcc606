package update_time_slot

import (
	"context"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/service/timeslots/models"
)

type TimeSlotService interface {
	Update(ctx context.Context, actor domain.Actor, slotID int64, req *models.UpdateTimeSlotRequest) (*models.TimeSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
