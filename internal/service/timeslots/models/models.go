package models

import (
	"github.com/m04kA/SMC-TireService/internal/domain"
)

// UpdateTimeSlotRequest ручная правка слота
type UpdateTimeSlotRequest struct {
	IsAvailable     *bool `json:"isAvailable,omitempty"`
	MaxAppointments *int  `json:"maxAppointments,omitempty"`
}

// TimeSlotResponse ответ с данными слота
type TimeSlotResponse struct {
	ID              int64  `json:"id"`
	ServicePointID  int64  `json:"servicePointId"`
	DayOfWeek       int    `json:"dayOfWeek"` // 0 - воскресенье
	Weekday         string `json:"weekday"`   // "monday"
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	IsAvailable     bool   `json:"isAvailable"`
	MaxAppointments int    `json:"maxAppointments"`
}

// TimeSlotListResponse ответ со списком слотов
type TimeSlotListResponse struct {
	TimeSlots []TimeSlotResponse `json:"timeSlots"`
}

// FromDomainTimeSlot конвертирует domain модель в DTO
func FromDomainTimeSlot(s *domain.TimeSlot) TimeSlotResponse {
	return TimeSlotResponse{
		ID:              s.ID,
		ServicePointID:  s.ServicePointID,
		DayOfWeek:       int(s.DayOfWeek),
		Weekday:         domain.WeekdayKey(s.DayOfWeek),
		StartTime:       s.StartTime.String(),
		EndTime:         s.EndTime.String(),
		IsAvailable:     s.IsAvailable,
		MaxAppointments: s.MaxAppointments,
	}
}

// FromDomainTimeSlotList конвертирует список domain моделей в DTO
func FromDomainTimeSlotList(slots []*domain.TimeSlot) *TimeSlotListResponse {
	resp := &TimeSlotListResponse{TimeSlots: make([]TimeSlotResponse, 0, len(slots))}
	for _, s := range slots {
		resp.TimeSlots = append(resp.TimeSlots, FromDomainTimeSlot(s))
	}
	return resp
}
