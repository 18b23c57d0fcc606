package schedules

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/infra/export"
	scheduleRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/schedule"
	servicePointRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/servicepoint"
	"github.com/m04kA/SMC-TireService/internal/integrations/notifications"
	"github.com/m04kA/SMC-TireService/internal/service/schedules/models"
)

// Service сервис расписания постов
type Service struct {
	scheduleRepo     ScheduleRepository
	servicePointRepo ServicePointRepository
	bookingRepo      BookingRepository
	publisher        EventPublisher
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	servicePointRepo ServicePointRepository,
	bookingRepo BookingRepository,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:     scheduleRepo,
		servicePointRepo: servicePointRepo,
		bookingRepo:      bookingRepo,
		publisher:        publisher,
		logger:           logger,
	}
}

// List возвращает расписание сервисной точки
func (s *Service) List(ctx context.Context, actor domain.Actor, req *models.ListSchedulesRequest) (*models.ScheduleListResponse, error) {
	if _, err := s.managedServicePoint(ctx, actor, req.ServicePointID); err != nil {
		return nil, err
	}

	filter := domain.SchedulesFilter{
		ServicePointID: req.ServicePointID,
		PostNumber:     req.PostNumber,
	}
	if req.Date != nil {
		date := domain.DateOnly(*req.Date)
		filter.Date = &date
	}
	if req.Status != nil {
		status, err := domain.ParseScheduleStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = &status
	}

	schedules, err := s.scheduleRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for service point id=%d: %v", req.ServicePointID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainScheduleList(schedules), nil
}

// Export выгружает расписание точки за день в XLSX
func (s *Service) Export(ctx context.Context, actor domain.Actor, servicePointID int64, date time.Time, w io.Writer) error {
	sp, err := s.managedServicePoint(ctx, actor, servicePointID)
	if err != nil {
		return err
	}

	date = domain.DateOnly(date)
	schedules, err := s.scheduleRepo.List(ctx, domain.SchedulesFilter{ServicePointID: servicePointID, Date: &date})
	if err != nil {
		s.logger.Error("Export: failed to list schedules for service point id=%d: %v", servicePointID, err)
		return fmt.Errorf("%w: Export - list schedules: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		ServicePointID: &servicePointID,
		StartDate:      &date,
		EndDate:        &date,
	})
	if err != nil {
		s.logger.Error("Export: failed to list bookings for service point id=%d: %v", servicePointID, err)
		return fmt.Errorf("%w: Export - list bookings: %v", ErrInternal, err)
	}

	book := export.NewScheduleXLSX(date)
	defer book.Close()

	if err := book.WriteTitle(sp); err != nil {
		return fmt.Errorf("%w: Export - write title: %v", ErrInternal, err)
	}
	if err := book.WriteSchedules(schedules, bookings); err != nil {
		return fmt.Errorf("%w: Export - write rows: %v", ErrInternal, err)
	}
	if err := book.Write(w); err != nil {
		return fmt.Errorf("%w: Export - write workbook: %v", ErrInternal, err)
	}

	s.logger.Info("Export: exported %d schedules of service point id=%d for %s",
		len(schedules), servicePointID, date.Format(domain.DateFormat))
	return nil
}

// ChangeStatus переводит слот расписания в новый статус
// available -> booked -> completed, available|booked -> cancelled
func (s *Service) ChangeStatus(ctx context.Context, actor domain.Actor, scheduleID int64, req *models.ChangeStatusRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("ChangeStatus: schedule id=%d to status=%s by user=%d", scheduleID, req.Status, actor.UserID)

	next, err := domain.ParseScheduleStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	schedule, err := s.getSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if _, err := s.managedServicePoint(ctx, actor, schedule.ServicePointID); err != nil {
		return nil, err
	}

	if !schedule.Status.CanTransitionTo(next) {
		s.logger.Warn("ChangeStatus: transition %s -> %s is not allowed for schedule id=%d", schedule.Status, next, scheduleID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, schedule.Status, next)
	}

	if err := s.scheduleRepo.TransitionStatus(ctx, scheduleID, next); err != nil {
		switch {
		case errors.Is(err, scheduleRepo.ErrStatusConflict):
			s.logger.Warn("ChangeStatus: concurrent status change for schedule id=%d", scheduleID)
			return nil, ErrStatusConflict
		case errors.Is(err, scheduleRepo.ErrScheduleNotFound):
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("ChangeStatus: repository error for schedule id=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: ChangeStatus - repository error: %v", ErrInternal, err)
	}

	schedule.Status = next
	s.publishStatusChanged(ctx, schedule)

	resp := models.FromDomainSchedule(schedule)
	return &resp, nil
}

// Delete мягко удаляет слот расписания, если на него нет активных бронирований
func (s *Service) Delete(ctx context.Context, actor domain.Actor, scheduleID int64) error {
	schedule, err := s.getSchedule(ctx, scheduleID)
	if err != nil {
		return err
	}

	if _, err := s.managedServicePoint(ctx, actor, schedule.ServicePointID); err != nil {
		return err
	}

	if err := s.scheduleRepo.SoftDelete(ctx, scheduleID); err != nil {
		switch {
		case errors.Is(err, scheduleRepo.ErrHasActiveBookings):
			return ErrHasActiveBookings
		case errors.Is(err, scheduleRepo.ErrScheduleNotFound):
			return ErrScheduleNotFound
		}
		s.logger.Error("Delete: repository error for schedule id=%d: %v", scheduleID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: schedule id=%d deleted by user=%d", scheduleID, actor.UserID)
	return nil
}

func (s *Service) getSchedule(ctx context.Context, id int64) (*domain.Schedule, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("getSchedule: repository error for schedule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getSchedule - repository error: %v", ErrInternal, err)
	}
	return schedule, nil
}

// managedServicePoint загружает точку и проверяет, что actor может ей управлять
func (s *Service) managedServicePoint(ctx context.Context, actor domain.Actor, servicePointID int64) (*domain.ServicePoint, error) {
	sp, err := s.servicePointRepo.GetByID(ctx, servicePointID)
	if err != nil {
		if errors.Is(err, servicePointRepo.ErrServicePointNotFound) {
			return nil, ErrServicePointNotFound
		}
		s.logger.Error("managedServicePoint: repository error for service point id=%d: %v", servicePointID, err)
		return nil, fmt.Errorf("%w: managedServicePoint - repository error: %v", ErrInternal, err)
	}

	if !actor.CanManage(sp) {
		s.logger.Warn("managedServicePoint: access denied for user=%d to service point id=%d", actor.UserID, servicePointID)
		return nil, ErrAccessDenied
	}
	return sp, nil
}

func (s *Service) publishStatusChanged(ctx context.Context, schedule *domain.Schedule) {
	err := s.publisher.Publish(ctx, notifications.ScheduleStatusChange, notifications.ScheduleStatusEvent{
		ScheduleID:     schedule.ID,
		ServicePointID: schedule.ServicePointID,
		PostNumber:     schedule.PostNumber,
		Date:           schedule.Date.Format(domain.DateFormat),
		StartTime:      schedule.StartTime.String(),
		Status:         string(schedule.Status),
	})
	if err != nil {
		s.logger.Warn("ChangeStatus: failed to publish event for schedule id=%d: %v", schedule.ID, err)
	}
}
