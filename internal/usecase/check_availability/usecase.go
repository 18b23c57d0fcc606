package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TireService/internal/domain"
	servicePointRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/servicepoint"
)

// UseCase use case публичной проверки доступности времени
type UseCase struct {
	servicePointRepo ServicePointRepository
	checker          *Checker
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(servicePointRepo ServicePointRepository, checker *Checker, logger Logger) *UseCase {
	return &UseCase{
		servicePointRepo: servicePointRepo,
		checker:          checker,
		logger:           logger,
	}
}

// Execute проверяет доступность времени на сервисной точке
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ServicePointID <= 0 {
		return nil, fmt.Errorf("%w: servicePointID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.Time.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid time: %w", ErrInvalidInput, err)
	}

	sp, err := uc.servicePointRepo.GetByID(ctx, req.ServicePointID)
	if err != nil {
		if errors.Is(err, servicePointRepo.ErrServicePointNotFound) {
			return nil, ErrServicePointNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get service point id=%d: %v", req.ServicePointID, err)
		return nil, fmt.Errorf("%w: failed to get service point: %w", ErrInternal, err)
	}

	resp := &Response{
		ServicePointID: sp.ID,
		Date:           req.Date.Format(domain.DateFormat),
		Time:           req.Time.String(),
	}

	if !sp.IsWorking() {
		resp.Reason = ReasonNotWorking
		return resp, nil
	}

	result, err := uc.checker.IsSlotAvailable(ctx, sp.ID, req.Date, req.Time)
	if err != nil {
		uc.logger.Error("CheckAvailability: service point=%d, %s %s: %v", sp.ID, resp.Date, resp.Time, err)
		return nil, err
	}

	resp.Available = result.Available
	resp.Reason = result.Reason
	resp.Booked = result.Booked
	resp.Capacity = result.Capacity
	if result.TimeSlot != nil {
		resp.SlotStart = result.TimeSlot.StartTime.String()
		resp.SlotEnd = result.TimeSlot.EndTime.String()
	}

	return resp, nil
}
