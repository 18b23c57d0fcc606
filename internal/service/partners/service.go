package partners

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TireService/internal/domain"
	partnerRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/partner"
	"github.com/m04kA/SMC-TireService/internal/service/partners/models"
)

// Service сервис для работы с партнерами
type Service struct {
	partnerRepo PartnerRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса партнеров
func NewService(partnerRepo PartnerRepository, logger Logger) *Service {
	return &Service{
		partnerRepo: partnerRepo,
		logger:      logger,
	}
}

// Create создает партнера. Только для администратора
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreatePartnerRequest) (*models.PartnerResponse, error) {
	if !actor.IsAdmin() {
		s.logger.Warn("Create: user=%d with role=%s is not allowed to create partners", actor.UserID, actor.Role)
		return nil, ErrAccessDenied
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len(req.Name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name is required and must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if strings.TrimSpace(req.ContactPhone) == "" {
		return nil, fmt.Errorf("%w: contactPhone is required", ErrInvalidInput)
	}

	created, err := s.partnerRepo.Create(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: partner id=%d created by user=%d", created.ID, actor.UserID)
	return models.FromDomainPartner(created), nil
}

// GetByID получает партнера. Доступно администратору и самому партнеру
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.PartnerResponse, error) {
	if !actor.IsAdmin() && !actor.OwnsPartner(id) {
		s.logger.Warn("GetByID: access denied for user=%d to partner id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	partner, err := s.partnerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, partnerRepo.ErrPartnerNotFound) {
			return nil, ErrPartnerNotFound
		}
		s.logger.Error("GetByID: repository error for partner id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPartner(partner), nil
}

// List возвращает всех партнеров. Только для администратора
func (s *Service) List(ctx context.Context, actor domain.Actor) (*models.PartnerListResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}

	partners, err := s.partnerRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPartnerList(partners), nil
}
