package models

import (
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// Request модели

// CreateServicePointRequest запрос на создание сервисной точки
type CreateServicePointRequest struct {
	PartnerID           int64               `json:"partnerId"`
	Name                string              `json:"name"`
	Address             string              `json:"address"`
	WorkingHours        domain.WorkingHours `json:"workingHours"`
	PostCount           *int                `json:"postCount,omitempty"`
	SlotDurationMinutes *int                `json:"slotDurationMinutes,omitempty"`
	Status              *string             `json:"status,omitempty"`
}

// UpdateServicePointRequest частичное обновление сервисной точки
type UpdateServicePointRequest struct {
	Name                *string             `json:"name,omitempty"`
	Address             *string             `json:"address,omitempty"`
	WorkingHours        domain.WorkingHours `json:"workingHours,omitempty"`
	PostCount           *int                `json:"postCount,omitempty"`
	SlotDurationMinutes *int                `json:"slotDurationMinutes,omitempty"`
	Status              *string             `json:"status,omitempty"`
}

// ListServicePointsRequest фильтр списка сервисных точек
type ListServicePointsRequest struct {
	PartnerID *int64
	Status    *string
}

// Response модели

// ServicePointResponse ответ с данными сервисной точки
type ServicePointResponse struct {
	ID                  int64               `json:"id"`
	PartnerID           int64               `json:"partnerId"`
	Name                string              `json:"name"`
	Address             string              `json:"address"`
	WorkingHours        domain.WorkingHours `json:"workingHours"`
	PostCount           int                 `json:"postCount"`
	SlotDurationMinutes int                 `json:"slotDurationMinutes"`
	Status              string              `json:"status"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

// ServicePointListResponse ответ со списком сервисных точек
type ServicePointListResponse struct {
	ServicePoints []ServicePointResponse `json:"servicePoints"`
}

// FromDomainServicePoint конвертирует domain модель в DTO
func FromDomainServicePoint(sp *domain.ServicePoint) *ServicePointResponse {
	if sp == nil {
		return nil
	}

	workingHours := sp.WorkingHours
	if workingHours == nil {
		workingHours = domain.WorkingHours{}
	}

	return &ServicePointResponse{
		ID:                  sp.ID,
		PartnerID:           sp.PartnerID,
		Name:                sp.Name,
		Address:             sp.Address,
		WorkingHours:        workingHours,
		PostCount:           sp.PostCount,
		SlotDurationMinutes: sp.SlotDurationMinutes,
		Status:              string(sp.Status),
		CreatedAt:           sp.CreatedAt,
		UpdatedAt:           sp.UpdatedAt,
	}
}

// FromDomainServicePointList конвертирует список domain моделей в DTO
func FromDomainServicePointList(points []*domain.ServicePoint) *ServicePointListResponse {
	resp := &ServicePointListResponse{ServicePoints: make([]ServicePointResponse, 0, len(points))}
	for _, sp := range points {
		resp.ServicePoints = append(resp.ServicePoints, *FromDomainServicePoint(sp))
	}
	return resp
}
