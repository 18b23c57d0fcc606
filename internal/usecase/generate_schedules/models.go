package generate_schedules

import (
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// Request модель запроса на генерацию расписания постов
type Request struct {
	Actor               *domain.Actor // nil - системный вызов
	ServicePointID      int64
	From                time.Time // первая дата, включительно
	To                  time.Time // последняя дата, включительно
	SlotDurationMinutes *int      // nil - длительность по умолчанию точки
}

// Response модель ответа
type Response struct {
	ServicePointID      int64  `json:"servicePointId"`
	From                string `json:"from"`
	To                  string `json:"to"`
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	PostCount           int    `json:"postCount"`
	WorkingDays         int    `json:"workingDays"`
	Generated           int    `json:"generated"` // строк сформировано
	Inserted            int64  `json:"inserted"`  // из них новых
}
