package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// Options ограничения на дату и время записи (те же, что при создании бронирования)
type Options struct {
	AdvanceBookingDays      int // 0 - без ограничения
	MinBookingNoticeMinutes int
}

// Request модель запроса на получение доступных слотов
type Request struct {
	ServicePointID int64     // ID сервисной точки
	Date           time.Time // Дата для получения слотов (без времени)
	IncludeFull    bool      // Показывать полностью занятые слоты
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ServicePointID int64
	Date           time.Time // Дата, на которую запрашивались слоты
	Working        bool      // Сервисная точка принимает записи
	Slots          []domain.AvailableSlot
}
