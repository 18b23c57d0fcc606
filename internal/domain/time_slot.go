package domain

import (
	"time"

	"github.com/m04kA/SMC-TireService/pkg/types"
)

// TimeSlot повторяющийся еженедельный слот сервисной точки
type TimeSlot struct {
	ID              int64
	ServicePointID  int64
	DayOfWeek       time.Weekday
	StartTime       types.TimeString
	EndTime         types.TimeString
	IsAvailable     bool
	MaxAppointments int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Contains проверяет start <= t < end
func (s *TimeSlot) Contains(t types.TimeString) bool {
	return !t.IsBefore(s.StartTime) && t.IsBefore(s.EndTime)
}

// TimeSlotUpdate ручная правка слота (теряется при перегенерации)
type TimeSlotUpdate struct {
	IsAvailable     *bool
	MaxAppointments *int
}
