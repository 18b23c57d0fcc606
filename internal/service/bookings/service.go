package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TireService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/schedule"
	servicePointRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/servicepoint"
	"github.com/m04kA/SMC-TireService/internal/integrations/notifications"
	"github.com/m04kA/SMC-TireService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo      BookingRepository
	servicePointRepo ServicePointRepository
	scheduleRepo     ScheduleRepository
	txManager        TransactionManager
	publisher        EventPublisher
	metrics          Metrics
	logger           Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	servicePointRepo ServicePointRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		servicePointRepo: servicePointRepo,
		scheduleRepo:     scheduleRepo,
		txManager:        txManager,
		publisher:        publisher,
		metrics:          metrics,
		logger:           logger,
	}
}

// GetByID получает бронирование по ID
// Доступно владельцу бронирования, партнеру сервисной точки и администратору
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, actor, booking, true); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetByReference получает бронирование по публичному идентификатору
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for reference=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований вызывающего пользователя
func (s *Service) GetUserBookings(ctx context.Context, actor domain.Actor, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", actor.UserID, req.Status)

	userID := actor.UserID
	filter := domain.BookingsFilter{UserID: &userID, IncludeCancelled: true}

	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, actor.UserID)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), actor.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetServicePointBookings получает бронирования сервисной точки с фильтрацией по периоду и статусу
// Доступно администратору и партнеру-владельцу точки
func (s *Service) GetServicePointBookings(ctx context.Context, actor domain.Actor, req *models.GetServicePointBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetServicePointBookings: service point=%d, user=%d", req.ServicePointID, actor.UserID)

	sp, err := s.getServicePoint(ctx, req.ServicePointID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(sp) {
		s.logger.Warn("GetServicePointBookings: access denied for user=%d to service point=%d", actor.UserID, req.ServicePointID)
		return nil, ErrAccessDenied
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetServicePointBookings: invalid filter for service point=%d: %v", req.ServicePointID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetServicePointBookings: repository error for service point=%d: %v", req.ServicePointID, err)
		return nil, fmt.Errorf("%w: GetServicePointBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetServicePointBookings: fetched %d bookings for service point=%d", len(bookings), req.ServicePointID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Клиент отменяет свое бронирование, партнер и администратор - любое бронирование точки
// Связанный слот расписания переходит booked -> cancelled
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, actor.UserID)

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellationReason must be at most %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, actor, booking, true); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", actor.UserID, bookingID)
		return nil, err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		s.metrics.RecordBooking("cancel", "rejected")
		return nil, ErrCannotCancel
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.transitionBooking(txCtx, "Cancel", bookingID, domain.BookingCancelled, req.CancellationReason); err != nil {
			return err
		}
		return s.transitionSchedule(txCtx, "Cancel", booking, domain.ScheduleCancelled)
	})
	if err != nil {
		s.metrics.RecordBooking("cancel", "error")
		return nil, err
	}

	updated, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordBooking("cancel", "success")
	s.publish(ctx, notifications.BookingCancelled, updated)
	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return models.FromDomainBooking(updated), nil
}

// Complete отмечает бронирование выполненным
// Доступно администратору и партнеру-владельцу точки
func (s *Service) Complete(ctx context.Context, actor domain.Actor, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("Complete: completing booking id=%d by user=%d", bookingID, actor.UserID)

	booking, err := s.getBooking(ctx, "Complete", bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, actor, booking, false); err != nil {
		s.logger.Warn("Complete: access denied for user=%d to booking id=%d", actor.UserID, bookingID)
		return nil, err
	}

	if !booking.CanBeCompleted() {
		s.logger.Warn("Complete: booking id=%d cannot be completed, status=%s", bookingID, booking.Status)
		s.metrics.RecordBooking("complete", "rejected")
		return nil, ErrCannotComplete
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.transitionBooking(txCtx, "Complete", bookingID, domain.BookingCompleted, nil); err != nil {
			return err
		}
		return s.transitionSchedule(txCtx, "Complete", booking, domain.ScheduleCompleted)
	})
	if err != nil {
		s.metrics.RecordBooking("complete", "error")
		return nil, err
	}

	booking.Status = domain.BookingCompleted
	s.metrics.RecordBooking("complete", "success")
	s.publish(ctx, notifications.BookingCompleted, booking)
	s.logger.Info("Complete: successfully completed booking id=%d", bookingID)
	return models.FromDomainBooking(booking), nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) getServicePoint(ctx context.Context, id int64) (*domain.ServicePoint, error) {
	sp, err := s.servicePointRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, servicePointRepo.ErrServicePointNotFound) {
			return nil, ErrServicePointNotFound
		}
		s.logger.Error("getServicePoint: repository error for service point id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getServicePoint - repository error: %v", ErrInternal, err)
	}
	return sp, nil
}

// checkAccess проверяет доступ к бронированию
// allowOwner - разрешен ли доступ клиенту, создавшему бронирование
func (s *Service) checkAccess(ctx context.Context, actor domain.Actor, booking *domain.Booking, allowOwner bool) error {
	if actor.IsAdmin() {
		return nil
	}
	if allowOwner && booking.IsOwnedBy(actor.UserID) {
		return nil
	}
	if actor.Role != domain.RolePartner {
		return ErrAccessDenied
	}

	sp, err := s.getServicePoint(ctx, booking.ServicePointID)
	if err != nil {
		return err
	}
	if !actor.CanManage(sp) {
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) transitionBooking(ctx context.Context, op string, id int64, next domain.BookingStatus, reason *string) error {
	if err := s.bookingRepo.TransitionStatus(ctx, id, next, reason); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			s.logger.Warn("%s: booking id=%d status changed concurrently", op, id)
			return ErrStatusConflict
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return ErrBookingNotFound
		}
		s.logger.Error("%s: failed to update booking id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - update booking: %v", ErrInternal, op, err)
	}
	return nil
}

// transitionSchedule переводит связанный слот расписания
// Если слот уже в конечном статусе или удален, бронирование все равно меняет статус
func (s *Service) transitionSchedule(ctx context.Context, op string, booking *domain.Booking, next domain.ScheduleStatus) error {
	if booking.ScheduleID == nil {
		return nil
	}

	err := s.scheduleRepo.TransitionStatus(ctx, *booking.ScheduleID, next)
	if err == nil {
		return nil
	}
	if errors.Is(err, scheduleRepo.ErrStatusConflict) || errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		s.logger.Warn("%s: schedule id=%d of booking id=%d not moved to %s: %v", op, *booking.ScheduleID, booking.ID, next, err)
		return nil
	}

	s.logger.Error("%s: failed to update schedule id=%d: %v", op, *booking.ScheduleID, err)
	return fmt.Errorf("%w: %s - update schedule: %v", ErrInternal, op, err)
}

func (s *Service) publish(ctx context.Context, key notifications.RoutingKey, booking *domain.Booking) {
	if err := s.publisher.Publish(ctx, key, notifications.NewBookingEvent(booking)); err != nil {
		s.logger.Warn("failed to publish %s for booking id=%d: %v", key, booking.ID, err)
	}
}
