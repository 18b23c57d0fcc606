package timeslots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/infra/cache"
	servicePointRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/servicepoint"
	timeSlotRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-TireService/internal/service/timeslots/models"
)

// Service сервис для чтения и ручной правки слотов
type Service struct {
	timeSlotRepo     TimeSlotRepository
	servicePointRepo ServicePointRepository
	cache            Cache
	logger           Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	timeSlotRepo TimeSlotRepository,
	servicePointRepo ServicePointRepository,
	cache Cache,
	logger Logger,
) *Service {
	return &Service{
		timeSlotRepo:     timeSlotRepo,
		servicePointRepo: servicePointRepo,
		cache:            cache,
		logger:           logger,
	}
}

// List возвращает слоты сервисной точки, опционально на один день недели
// Списки по дню недели кешируются
func (s *Service) List(ctx context.Context, servicePointID int64, day *time.Weekday) (*models.TimeSlotListResponse, error) {
	if day != nil {
		var cached models.TimeSlotListResponse
		if s.cache.Get(ctx, cache.TimeSlotsKey(servicePointID, *day), &cached) {
			return &cached, nil
		}
	}

	if _, err := s.servicePointRepo.GetByID(ctx, servicePointID); err != nil {
		if errors.Is(err, servicePointRepo.ErrServicePointNotFound) {
			return nil, ErrServicePointNotFound
		}
		s.logger.Error("List: failed to get service point id=%d: %v", servicePointID, err)
		return nil, fmt.Errorf("%w: List - get service point: %v", ErrInternal, err)
	}

	slots, err := s.timeSlotRepo.ListByServicePoint(ctx, servicePointID, day)
	if err != nil {
		s.logger.Error("List: repository error for service point id=%d: %v", servicePointID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainTimeSlotList(slots)
	if day != nil {
		s.cache.Set(ctx, cache.TimeSlotsKey(servicePointID, *day), resp)
	}
	return resp, nil
}

// Update меняет доступность и вместимость слота
// Правка действует до следующей генерации слотов точки
func (s *Service) Update(ctx context.Context, actor domain.Actor, slotID int64, req *models.UpdateTimeSlotRequest) (*models.TimeSlotResponse, error) {
	s.logger.Info("Update: updating time slot id=%d by user=%d", slotID, actor.UserID)

	if req.IsAvailable == nil && req.MaxAppointments == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.MaxAppointments != nil && (*req.MaxAppointments < 1 || *req.MaxAppointments > domain.MaxAppointmentsPerSlot) {
		return nil, fmt.Errorf("%w: maxAppointments must be between 1 and %d", ErrInvalidInput, domain.MaxAppointmentsPerSlot)
	}

	slot, err := s.timeSlotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, timeSlotRepo.ErrTimeSlotNotFound) {
			return nil, ErrTimeSlotNotFound
		}
		s.logger.Error("Update: failed to get time slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: Update - get time slot: %v", ErrInternal, err)
	}

	sp, err := s.servicePointRepo.GetByID(ctx, slot.ServicePointID)
	if err != nil {
		if errors.Is(err, servicePointRepo.ErrServicePointNotFound) {
			return nil, ErrServicePointNotFound
		}
		s.logger.Error("Update: failed to get service point id=%d: %v", slot.ServicePointID, err)
		return nil, fmt.Errorf("%w: Update - get service point: %v", ErrInternal, err)
	}

	if !actor.CanManage(sp) {
		s.logger.Warn("Update: access denied for user=%d to time slot id=%d", actor.UserID, slotID)
		return nil, ErrAccessDenied
	}

	update := domain.TimeSlotUpdate{
		IsAvailable:     req.IsAvailable,
		MaxAppointments: req.MaxAppointments,
	}
	if err := s.timeSlotRepo.Update(ctx, slotID, update); err != nil {
		if errors.Is(err, timeSlotRepo.ErrTimeSlotNotFound) {
			return nil, ErrTimeSlotNotFound
		}
		s.logger.Error("Update: repository error for time slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.cache.Delete(ctx, cache.TimeSlotsKey(slot.ServicePointID, slot.DayOfWeek))

	if req.IsAvailable != nil {
		slot.IsAvailable = *req.IsAvailable
	}
	if req.MaxAppointments != nil {
		slot.MaxAppointments = *req.MaxAppointments
	}

	s.logger.Info("Update: time slot id=%d updated (available=%t, max=%d)", slotID, slot.IsAvailable, slot.MaxAppointments)
	resp := models.FromDomainTimeSlot(slot)
	return &resp, nil
}
