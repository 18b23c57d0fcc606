package generate_time_slots

import (
	"fmt"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServicePointID <= 0 {
		return fmt.Errorf("%w: servicePointID must be positive", ErrInvalidInput)
	}

	if req.WorkingHours != nil {
		if err := req.WorkingHours.ValidateKeys(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
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
