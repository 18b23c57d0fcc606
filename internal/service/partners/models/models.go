package models

import (
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// CreatePartnerRequest запрос на создание партнера
type CreatePartnerRequest struct {
	Name         string  `json:"name"`
	ContactPhone string  `json:"contactPhone"`
	ContactEmail *string `json:"contactEmail,omitempty"`
}

// ToDomain конвертирует запрос в domain модель
func (r *CreatePartnerRequest) ToDomain() *domain.Partner {
	return &domain.Partner{
		Name:         r.Name,
		ContactPhone: r.ContactPhone,
		ContactEmail: r.ContactEmail,
	}
}

// PartnerResponse ответ с данными партнера
type PartnerResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ContactPhone string    `json:"contactPhone"`
	ContactEmail *string   `json:"contactEmail,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PartnerListResponse ответ со списком партнеров
type PartnerListResponse struct {
	Partners []PartnerResponse `json:"partners"`
}

// FromDomainPartner конвертирует domain модель в DTO
func FromDomainPartner(p *domain.Partner) *PartnerResponse {
	if p == nil {
		return nil
	}
	return &PartnerResponse{
		ID:           p.ID,
		Name:         p.Name,
		ContactPhone: p.ContactPhone,
		ContactEmail: p.ContactEmail,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// FromDomainPartnerList конвертирует список domain моделей в DTO
func FromDomainPartnerList(partners []*domain.Partner) *PartnerListResponse {
	resp := &PartnerListResponse{Partners: make([]PartnerResponse, 0, len(partners))}
	for _, p := range partners {
		resp.Partners = append(resp.Partners, *FromDomainPartner(p))
	}
	return resp
}
