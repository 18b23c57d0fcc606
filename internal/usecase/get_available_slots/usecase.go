package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TireService/internal/domain"
	servicePointRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/servicepoint"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	servicePointRepo ServicePointRepository
	timeSlotRepo     TimeSlotRepository
	bookingRepo      BookingRepository
	options          Options
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	servicePointRepo ServicePointRepository,
	timeSlotRepo TimeSlotRepository,
	bookingRepo BookingRepository,
	options Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		servicePointRepo: servicePointRepo,
		timeSlotRepo:     timeSlotRepo,
		bookingRepo:      bookingRepo,
		options:          options,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute возвращает слоты дня недели даты с оставшейся вместимостью
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service point=%d, date=%s",
		req.ServicePointID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	now := uc.timeProvider.Now()

	// 2. Валидация даты
	if err := validateDate(date, now, uc.options.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем сервисную точку
	sp, err := uc.servicePointRepo.GetByID(ctx, req.ServicePointID)
	if err != nil {
		if errors.Is(err, servicePointRepo.ErrServicePointNotFound) {
			uc.logger.Warn("GetAvailableSlots: service point id=%d not found", req.ServicePointID)
			return nil, ErrServicePointNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service point id=%d: %v", req.ServicePointID, err)
		return nil, fmt.Errorf("%w: failed to get service point: %v", ErrInternal, err)
	}

	resp := &Response{
		ServicePointID: sp.ID,
		Date:           date,
		Working:        sp.IsWorking(),
		Slots:          []domain.AvailableSlot{},
	}

	if !sp.IsWorking() {
		uc.logger.Info("GetAvailableSlots: service point id=%d has status %s", sp.ID, sp.Status)
		return resp, nil
	}

	// 4. Слоты дня недели
	weekday := date.Weekday()
	timeSlots, err := uc.timeSlotRepo.ListByServicePoint(ctx, sp.ID, &weekday)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list time slots: %v", ErrInternal, err)
	}

	if len(timeSlots) == 0 {
		uc.logger.Info("GetAvailableSlots: no time slots on %s", domain.WeekdayKey(weekday))
		return resp, nil
	}

	// 5. Занятость на дату
	counts, err := uc.bookingRepo.CountActiveByDate(ctx, sp.ID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	// 6. Вычисляем доступность для каждого слота
	earliest := earliestStart(date, now, uc.options.MinBookingNoticeMinutes)
	for _, ts := range timeSlots {
		if !ts.IsAvailable || ts.StartTime.Minutes() < earliest {
			continue
		}

		slot := domain.AvailableSlot{
			TimeSlotID: ts.ID,
			StartTime:  ts.StartTime,
			EndTime:    ts.EndTime,
			Booked:     countInSlot(counts, ts),
			Capacity:   ts.MaxAppointments,
		}
		if slot.IsFull() && !req.IncludeFull {
			continue
		}
		resp.Slots = append(resp.Slots, slot)
	}

	uc.logger.Info("GetAvailableSlots: %d slots for service point=%d, date=%s",
		len(resp.Slots), sp.ID, date.Format(domain.DateFormat))

	return resp, nil
}
