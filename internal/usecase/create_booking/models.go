package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/pkg/types"
)

// Options ограничения на дату и время записи
type Options struct {
	AdvanceBookingDays      int // 0 - без ограничения
	MinBookingNoticeMinutes int
}

// Request модель запроса на создание бронирования
type Request struct {
	Actor          *domain.Actor    // авторизованный клиент (nil - анонимная запись)
	ServicePointID int64            // ID сервисной точки
	Date           time.Time        // Дата бронирования (без времени)
	StartTime      types.TimeString // Время начала слота (например, "10:00")

	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	CarModel      *string
	LicensePlate  *string
	Notes         *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking    *domain.Booking
	TimeSlotID int64 // слот, в который записан клиент
	Remaining  int   // свободных мест в слоте после записи
}
