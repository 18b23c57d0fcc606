package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServicePointID <= 0 {
		return fmt.Errorf("%w: servicePointID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(date, now time.Time, advanceBookingDays int) error {
	if domain.DateOnly(date).Before(domain.DateOnly(now)) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := domain.DateOnly(now).AddDate(0, 0, advanceBookingDays)
	if domain.DateOnly(date).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// earliestStart минимальное время начала слота для даты
// Для сегодняшней даты учитывается minBookingNoticeMinutes, для остальных ограничения нет
func earliestStart(date, now time.Time, minBookingNoticeMinutes int) int {
	if !domain.DateOnly(date).Equal(domain.DateOnly(now)) {
		return 0
	}
	return now.Hour()*60 + now.Minute() + minBookingNoticeMinutes
}

// countInSlot суммирует бронирования, начало которых попадает в [start, end)
func countInSlot(counts map[types.TimeString]int, slot *domain.TimeSlot) int {
	total := 0
	for start, n := range counts {
		if slot.Contains(start) {
			total += n
		}
	}
	return total
}
