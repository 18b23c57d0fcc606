package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
	timeSlotRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-TireService/pkg/types"
)

// Checker проверяет, есть ли свободное место в слоте на дату и время
// Внутри транзакции слот блокируется репозиторием, и проверка может
// использоваться перед вставкой бронирования
type Checker struct {
	timeSlotRepo TimeSlotRepository
	bookingRepo  BookingRepository
}

// NewChecker создает проверку доступности
func NewChecker(timeSlotRepo TimeSlotRepository, bookingRepo BookingRepository) *Checker {
	return &Checker{
		timeSlotRepo: timeSlotRepo,
		bookingRepo:  bookingRepo,
	}
}

// IsSlotAvailable ищет доступный слот дня недели даты, покрывающий at (start <= at < end),
// и сравнивает число активных бронирований, начинающихся в слоте, с его вместимостью
func (c *Checker) IsSlotAvailable(ctx context.Context, servicePointID int64, date time.Time, at types.TimeString) (*Result, error) {
	date = domain.DateOnly(date)

	slot, err := c.timeSlotRepo.FindCovering(ctx, servicePointID, date.Weekday(), at)
	if errors.Is(err, timeSlotRepo.ErrTimeSlotNotFound) {
		return &Result{Reason: ReasonNoTimeSlot}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: IsSlotAvailable - find time slot: %w", ErrInternal, err)
	}

	booked, err := c.bookingRepo.CountActiveInRange(ctx, servicePointID, date, slot.StartTime, slot.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: IsSlotAvailable - count bookings: %w", ErrInternal, err)
	}

	result := &Result{
		Available: booked < slot.MaxAppointments,
		TimeSlot:  slot,
		Booked:    booked,
		Capacity:  slot.MaxAppointments,
	}
	if !result.Available {
		result.Reason = ReasonFullyBooked
	}
	return result, nil
}
