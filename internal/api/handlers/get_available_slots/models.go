package get_available_slots

import (
	"strconv"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-TireService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date           string          `json:"date"`
	ServicePointID int64           `json:"servicePointId"`
	Working        bool            `json:"working"`
	Slots          []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	TimeSlotID     int64   `json:"timeSlotId"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	AvailableSpots int     `json:"availableSpots"`
	TotalSpots     int     `json:"totalSpots"`
	Occupancy      float64 `json:"occupancy"` // процент занятости
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i := range resp.Slots {
		slot := &resp.Slots[i]
		slots[i] = AvailableSlot{
			TimeSlotID:     slot.TimeSlotID,
			StartTime:      slot.StartTime.String(),
			EndTime:        slot.EndTime.String(),
			AvailableSpots: slot.Remaining(),
			TotalSpots:     slot.Capacity,
			Occupancy:      slot.OccupancyRate(),
		}
	}

	return &AvailableSlotsResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		ServicePointID: resp.ServicePointID,
		Working:        resp.Working,
		Slots:          slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(servicePointID int64, dateStr, includeFullStr string) (*getAvailableSlots.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		ServicePointID: servicePointID,
		Date:           date,
	}

	if includeFullStr != "" {
		includeFull, err := strconv.ParseBool(includeFullStr)
		if err != nil {
			return nil, err
		}
		req.IncludeFull = includeFull
	}

	return req, nil
}
