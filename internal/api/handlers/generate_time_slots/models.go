package generate_time_slots

import (
	"github.com/m04kA/SMC-TireService/internal/domain"
	generateTimeSlots "github.com/m04kA/SMC-TireService/internal/usecase/generate_time_slots"
)

// GenerateTimeSlotsRequest HTTP request model
// Пустое тело: рабочие часы и длительность берутся из сервисной точки
type GenerateTimeSlotsRequest struct {
	WorkingHours        domain.WorkingHours `json:"workingHours,omitempty"`
	SlotDurationMinutes *int                `json:"slotDurationMinutes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в use case request
func (r *GenerateTimeSlotsRequest) ToUseCaseRequest(actor domain.Actor, servicePointID int64) *generateTimeSlots.Request {
	return &generateTimeSlots.Request{
		Actor:               &actor,
		ServicePointID:      servicePointID,
		WorkingHours:        r.WorkingHours,
		SlotDurationMinutes: r.SlotDurationMinutes,
	}
}
