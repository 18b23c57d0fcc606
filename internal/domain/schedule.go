package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TireService/pkg/types"
)

// ScheduleStatus статус слота расписания поста
type ScheduleStatus string

const (
	ScheduleAvailable ScheduleStatus = "available"
	ScheduleBooked    ScheduleStatus = "booked"
	ScheduleCompleted ScheduleStatus = "completed"
	ScheduleCancelled ScheduleStatus = "cancelled"
)

// available -> booked -> completed, available|booked -> cancelled
// completed и cancelled - конечные
var scheduleTransitions = map[ScheduleStatus][]ScheduleStatus{
	ScheduleAvailable: {ScheduleBooked, ScheduleCancelled},
	ScheduleBooked:    {ScheduleCompleted, ScheduleCancelled},
}

// ParseScheduleStatus проверяет строку и возвращает статус расписания
func ParseScheduleStatus(s string) (ScheduleStatus, error) {
	switch status := ScheduleStatus(s); status {
	case ScheduleAvailable, ScheduleBooked, ScheduleCompleted, ScheduleCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidScheduleStatus, s)
	}
}

// CanTransitionTo возвращает true, если переход в next разрешен
func (s ScheduleStatus) CanTransitionTo(next ScheduleStatus) bool {
	for _, allowed := range scheduleTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal из статуса нет переходов
func (s ScheduleStatus) IsTerminal() bool {
	return len(scheduleTransitions[s]) == 0
}

// ScheduleSourceStatuses статусы, из которых разрешен переход в next
// Используется для условного UPDATE ... WHERE status IN (...)
func ScheduleSourceStatuses(next ScheduleStatus) []ScheduleStatus {
	sources := make([]ScheduleStatus, 0, 2)
	for _, from := range []ScheduleStatus{ScheduleAvailable, ScheduleBooked} {
		if from.CanTransitionTo(next) {
			sources = append(sources, from)
		}
	}
	return sources
}

// Schedule слот конкретного поста на конкретную дату
type Schedule struct {
	ID             int64
	ServicePointID int64
	PostNumber     int
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Status         ScheduleStatus
	DeletedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SchedulesFilter фильтр расписания сервисной точки
type SchedulesFilter struct {
	ServicePointID int64
	Date           *time.Time
	PostNumber     *int
	Status         *ScheduleStatus
}
