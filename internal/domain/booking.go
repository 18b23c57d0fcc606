package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TireService/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

// ParseBookingStatus проверяет строку и возвращает статус бронирования
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch status := BookingStatus(s); status {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidBookingStatus, s)
	}
}

// CanTransitionTo возвращает true, если переход в next разрешен
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// BookingSourceStatuses статусы, из которых разрешен переход в next
func BookingSourceStatuses(next BookingStatus) []BookingStatus {
	sources := make([]BookingStatus, 0, 2)
	for from, targets := range bookingTransitions {
		for _, to := range targets {
			if to == next {
				sources = append(sources, from)
			}
		}
	}
	return sources
}

// Booking бронирование на сервисной точке
type Booking struct {
	ID             int64
	Reference      string // публичный идентификатор (UUID)
	ServicePointID int64
	ScheduleID     *int64 // пост, если запись привязана к расписанию
	UserID         *int64 // клиент, если бронирование создано авторизованным пользователем
	BookingDate    time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Status         BookingStatus

	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	CarModel      *string
	LicensePlate  *string
	Notes         *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive бронирование занимает место в слоте
func (b *Booking) IsActive() bool {
	return b.Status != BookingCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(BookingCancelled)
}

// CanBeCompleted returns true if the booking can be completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status.CanTransitionTo(BookingCompleted)
}

// IsOwnedBy возвращает true, если бронирование создано пользователем userID
func (b *Booking) IsOwnedBy(userID int64) bool {
	return b.UserID != nil && *b.UserID == userID
}

// BookingsFilter фильтр для списка бронирований
type BookingsFilter struct {
	ServicePointID   *int64
	UserID           *int64
	StartDate        *time.Time
	EndDate          *time.Time
	Status           *BookingStatus
	IncludeCancelled bool
}
