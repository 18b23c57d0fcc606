package generate_schedules

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time, maxDays int) error {
	if req.ServicePointID <= 0 {
		return fmt.Errorf("%w: servicePointID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidDateRange)
	}

	from, to := domain.DateOnly(req.From), domain.DateOnly(req.To)
	if to.Before(from) {
		return fmt.Errorf("%w: to is before from", ErrInvalidDateRange)
	}
	if from.Before(domain.DateOnly(now)) {
		return fmt.Errorf("%w: from is in the past", ErrInvalidDateRange)
	}
	if days := daysInclusive(from, to); maxDays > 0 && days > maxDays {
		return fmt.Errorf("%w: at most %d days per request, got %d", ErrInvalidDateRange, maxDays, days)
	}

	if req.SlotDurationMinutes != nil {
		if err := validateSlotDuration(*req.SlotDurationMinutes); err != nil {
			return err
		}
	}

	return nil
}

func validateSlotDuration(minutes int) error {
	if minutes < domain.MinSlotDurationMinutes || minutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: must be between %d and %d minutes, got %d",
			ErrInvalidSlotDuration, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes, minutes)
	}
	return nil
}

func daysInclusive(from, to time.Time) int {
	return int(to.Sub(from).Hours()/24) + 1
}
