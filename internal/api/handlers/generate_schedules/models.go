package generate_schedules

import (
	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/domain"
	generateSchedules "github.com/m04kA/SMC-TireService/internal/usecase/generate_schedules"
)

// GenerateSchedulesRequest HTTP request model
type GenerateSchedulesRequest struct {
	From                string `json:"from"` // "2025-10-15"
	To                  string `json:"to"`
	SlotDurationMinutes *int   `json:"slotDurationMinutes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в use case request
func (r *GenerateSchedulesRequest) ToUseCaseRequest(actor domain.Actor, servicePointID int64) (*generateSchedules.Request, error) {
	from, err := handlers.ParseDate(r.From)
	if err != nil {
		return nil, err
	}
	to, err := handlers.ParseDate(r.To)
	if err != nil {
		return nil, err
	}

	return &generateSchedules.Request{
		Actor:               &actor,
		ServicePointID:      servicePointID,
		From:                from,
		To:                  to,
		SlotDurationMinutes: r.SlotDurationMinutes,
	}, nil
}
