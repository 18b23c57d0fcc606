package generate_time_slots

import "github.com/m04kA/SMC-TireService/internal/domain"

// Состояние дня после разбора рабочих часов
const (
	DayOpen      = "open"
	DayClosed    = "closed"
	DayMalformed = "malformed"
)

// Request модель запроса на генерацию слотов
type Request struct {
	Actor               *domain.Actor       // nil - системный вызов (seed)
	ServicePointID      int64               // ID сервисной точки
	WorkingHours        domain.WorkingHours // nil - рабочие часы точки
	SlotDurationMinutes *int                // nil - длительность по умолчанию точки
}

// DayResult результат генерации одного дня недели
type DayResult struct {
	Weekday string `json:"weekday"`
	State   string `json:"state"`
	Open    string `json:"open,omitempty"`
	Close   string `json:"close,omitempty"`
	Removed int64  `json:"removed"`
	Created int    `json:"created"`
}

// Response модель ответа
type Response struct {
	ServicePointID      int64       `json:"servicePointId"`
	SlotDurationMinutes int         `json:"slotDurationMinutes"`
	Days                []DayResult `json:"days"`
	TotalSlots          int         `json:"totalSlots"`
}
