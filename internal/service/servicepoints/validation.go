package servicepoints

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/service/servicepoints/models"
	"github.com/m04kA/SMC-TireService/internal/slots"
	"github.com/m04kA/SMC-TireService/pkg/ptr"
)

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return nil
}

func validatePostCount(n int) error {
	if n < domain.MinPostCount || n > domain.MaxPostCount {
		return fmt.Errorf("%w: postCount must be between %d and %d", ErrInvalidInput, domain.MinPostCount, domain.MaxPostCount)
	}
	return nil
}

func validateSlotDuration(minutes int) error {
	if minutes < domain.MinSlotDurationMinutes || minutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	return nil
}

func validateWorkingHours(wh domain.WorkingHours) error {
	if err := slots.ValidateWorkingHours(wh); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWorkingHours, err)
	}
	return nil
}

func parseStatus(s *string) (*domain.ServicePointStatus, error) {
	if s == nil {
		return nil, nil
	}
	status, err := domain.ParseServicePointStatus(*s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &status, nil
}

// buildServicePoint проверяет запрос на создание и заполняет значения по умолчанию
func buildServicePoint(req *models.CreateServicePointRequest, slotDuration int) (*domain.ServicePoint, error) {
	if req.PartnerID <= 0 {
		return nil, fmt.Errorf("%w: partnerId must be positive", ErrInvalidInput)
	}
	if err := validateName(req.Name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Address) == "" {
		return nil, fmt.Errorf("%w: address is required", ErrInvalidInput)
	}

	sp := &domain.ServicePoint{
		PartnerID:           req.PartnerID,
		Name:                strings.TrimSpace(req.Name),
		Address:             strings.TrimSpace(req.Address),
		WorkingHours:        req.WorkingHours,
		PostCount:           ptr.Deref(req.PostCount, domain.DefaultPostCount),
		SlotDurationMinutes: ptr.Deref(req.SlotDurationMinutes, slotDuration),
		Status:              domain.ServicePointWorking,
	}
	if sp.WorkingHours == nil {
		sp.WorkingHours = domain.WorkingHours{}
	}
	if err := validateWorkingHours(sp.WorkingHours); err != nil {
		return nil, err
	}
	if err := validatePostCount(sp.PostCount); err != nil {
		return nil, err
	}
	if err := validateSlotDuration(sp.SlotDurationMinutes); err != nil {
		return nil, err
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	if status != nil {
		sp.Status = *status
	}

	return sp, nil
}

// buildUpdate проверяет частичное обновление
func buildUpdate(req *models.UpdateServicePointRequest) (domain.ServicePointUpdate, error) {
	var update domain.ServicePointUpdate

	if req.Name != nil {
		if err := validateName(*req.Name); err != nil {
			return update, err
		}
		name := strings.TrimSpace(*req.Name)
		update.Name = &name
	}
	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		if address == "" {
			return update, fmt.Errorf("%w: address must not be empty", ErrInvalidInput)
		}
		update.Address = &address
	}
	if req.WorkingHours != nil {
		if err := validateWorkingHours(req.WorkingHours); err != nil {
			return update, err
		}
		update.WorkingHours = req.WorkingHours
	}
	if req.PostCount != nil {
		if err := validatePostCount(*req.PostCount); err != nil {
			return update, err
		}
		update.PostCount = req.PostCount
	}
	if req.SlotDurationMinutes != nil {
		if err := validateSlotDuration(*req.SlotDurationMinutes); err != nil {
			return update, err
		}
		update.SlotDurationMinutes = req.SlotDurationMinutes
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		return update, err
	}
	update.Status = status

	if update.IsEmpty() {
		return update, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	return update, nil
}
