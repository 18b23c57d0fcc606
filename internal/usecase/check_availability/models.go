package check_availability

import (
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/pkg/types"
)

// Причины недоступности
const (
	ReasonNoTimeSlot  = "no_time_slot"  // нет доступного слота, покрывающего время
	ReasonFullyBooked = "fully_booked"  // все места слота заняты
	ReasonNotWorking  = "not_working"   // сервисная точка не принимает записи
)

// Result результат проверки доступности
type Result struct {
	Available bool
	Reason    string
	TimeSlot  *domain.TimeSlot // слот, покрывающий время (nil, если не найден)
	Booked    int              // активных бронирований в слоте
	Capacity  int              // max_appointments слота
}

// Request модель запроса проверки доступности
type Request struct {
	ServicePointID int64
	Date           time.Time
	Time           types.TimeString
}

// Response модель ответа
type Response struct {
	ServicePointID int64  `json:"servicePointId"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Available      bool   `json:"available"`
	Reason         string `json:"reason,omitempty"`
	SlotStart      string `json:"slotStart,omitempty"`
	SlotEnd        string `json:"slotEnd,omitempty"`
	Booked         int    `json:"booked"`
	Capacity       int    `json:"capacity"`
}
