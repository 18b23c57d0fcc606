package servicepoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/infra/cache"
	partnerRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/partner"
	servicePointRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/servicepoint"
	"github.com/m04kA/SMC-TireService/internal/service/servicepoints/models"
)

// Service сервис для работы с сервисными точками
type Service struct {
	servicePointRepo ServicePointRepository
	partnerRepo      PartnerRepository
	cache            Cache
	slotDuration     int // длительность слота новой точки по умолчанию
	logger           Logger
}

// NewService создает новый экземпляр сервиса сервисных точек
func NewService(
	servicePointRepo ServicePointRepository,
	partnerRepo PartnerRepository,
	cache Cache,
	defaultSlotDuration int,
	logger Logger,
) *Service {
	if defaultSlotDuration <= 0 {
		defaultSlotDuration = domain.DefaultSlotDurationMinutes
	}
	return &Service{
		servicePointRepo: servicePointRepo,
		partnerRepo:      partnerRepo,
		cache:            cache,
		slotDuration:     defaultSlotDuration,
		logger:           logger,
	}
}

// Create создает сервисную точку
// Администратор создает точку для любого партнера, партнер - только для себя
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateServicePointRequest) (*models.ServicePointResponse, error) {
	if actor.Role == domain.RolePartner && req.PartnerID == 0 && actor.PartnerID != nil {
		req.PartnerID = *actor.PartnerID
	}

	s.logger.Info("Create: creating service point for partner=%d by user=%d", req.PartnerID, actor.UserID)

	if !actor.IsAdmin() && !actor.OwnsPartner(req.PartnerID) {
		s.logger.Warn("Create: access denied for user=%d to partner=%d", actor.UserID, req.PartnerID)
		return nil, ErrAccessDenied
	}

	sp, err := buildServicePoint(req, s.slotDuration)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.partnerRepo.GetByID(ctx, req.PartnerID); err != nil {
		if errors.Is(err, partnerRepo.ErrPartnerNotFound) {
			return nil, ErrPartnerNotFound
		}
		s.logger.Error("Create: failed to get partner id=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: Create - get partner: %v", ErrInternal, err)
	}

	created, err := s.servicePointRepo.Create(ctx, sp)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: service point id=%d created", created.ID)
	return models.FromDomainServicePoint(created), nil
}

// GetByID получает сервисную точку (публичный доступ, через кеш)
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServicePointResponse, error) {
	var cached models.ServicePointResponse
	if s.cache.Get(ctx, cache.ServicePointKey(id), &cached) {
		return &cached, nil
	}

	sp, err := s.servicePointRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, servicePointRepo.ErrServicePointNotFound) {
			return nil, ErrServicePointNotFound
		}
		s.logger.Error("GetByID: repository error for service point id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainServicePoint(sp)
	s.cache.Set(ctx, cache.ServicePointKey(id), resp)
	return resp, nil
}

// List возвращает сервисные точки с фильтрацией по партнеру и статусу
func (s *Service) List(ctx context.Context, req *models.ListServicePointsRequest) (*models.ServicePointListResponse, error) {
	filter := domain.ServicePointsFilter{PartnerID: req.PartnerID}

	status, err := parseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	filter.Status = status

	points, err := s.servicePointRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServicePointList(points), nil
}

// Update частично обновляет сервисную точку
// Изменение рабочих часов не перегенерирует слоты: для этого есть отдельная операция
func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateServicePointRequest) (*models.ServicePointResponse, error) {
	s.logger.Info("Update: updating service point id=%d by user=%d", id, actor.UserID)

	sp, err := s.servicePointRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, servicePointRepo.ErrServicePointNotFound) {
			return nil, ErrServicePointNotFound
		}
		s.logger.Error("Update: failed to get service point id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - get service point: %v", ErrInternal, err)
	}

	if !actor.CanManage(sp) {
		s.logger.Warn("Update: access denied for user=%d to service point id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	update, err := buildUpdate(req)
	if err != nil {
		s.logger.Warn("Update: validation failed for service point id=%d: %v", id, err)
		return nil, err
	}

	if err := s.servicePointRepo.Update(ctx, id, update); err != nil {
		if errors.Is(err, servicePointRepo.ErrServicePointNotFound) {
			return nil, ErrServicePointNotFound
		}
		s.logger.Error("Update: repository error for service point id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.cache.Delete(ctx, cache.ServicePointKey(id))

	updated, err := s.servicePointRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reload service point id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - reload service point: %v", ErrInternal, err)
	}

	s.logger.Info("Update: service point id=%d updated", id)
	return models.FromDomainServicePoint(updated), nil
}
