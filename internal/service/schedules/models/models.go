package models

import (
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// ListSchedulesRequest запрос расписания сервисной точки
type ListSchedulesRequest struct {
	ServicePointID int64
	Date           *time.Time
	PostNumber     *int
	Status         *string
}

// ChangeStatusRequest запрос на смену статуса слота расписания
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// ScheduleResponse ответ с данными слота расписания
type ScheduleResponse struct {
	ID             int64     `json:"id"`
	ServicePointID int64     `json:"servicePointId"`
	PostNumber     int       `json:"postNumber"`
	Date           string    `json:"date"`
	StartTime      string    `json:"startTime"`
	EndTime        string    `json:"endTime"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ScheduleListResponse ответ со списком слотов расписания
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:             s.ID,
		ServicePointID: s.ServicePointID,
		PostNumber:     s.PostNumber,
		Date:           s.Date.Format(domain.DateFormat),
		StartTime:      s.StartTime.String(),
		EndTime:        s.EndTime.String(),
		Status:         string(s.Status),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// FromDomainScheduleList конвертирует список domain моделей в DTO
func FromDomainScheduleList(schedules []*domain.Schedule) *ScheduleListResponse {
	resp := &ScheduleListResponse{Schedules: make([]ScheduleResponse, 0, len(schedules))}
	for _, s := range schedules {
		resp.Schedules = append(resp.Schedules, FromDomainSchedule(s))
	}
	return resp
}
