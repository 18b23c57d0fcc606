package export_schedules

import (
	"context"
	"io"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

type ScheduleService interface {
	Export(ctx context.Context, actor domain.Actor, servicePointID int64, date time.Time, w io.Writer) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
