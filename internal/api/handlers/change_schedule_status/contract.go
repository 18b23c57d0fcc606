package change_schedule_status

import (
	"context"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/service/schedules/models"
)

type ScheduleService interface {
	ChangeStatus(ctx context.Context, actor domain.Actor, scheduleID int64, req *models.ChangeStatusRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
