package domain

import (
	"fmt"
	"time"
)

// ServicePointStatus статус сервисной точки
type ServicePointStatus string

const (
	ServicePointWorking   ServicePointStatus = "working"
	ServicePointSuspended ServicePointStatus = "suspended"
	ServicePointClosed    ServicePointStatus = "closed"
)

// ParseServicePointStatus проверяет строку и возвращает статус сервисной точки
func ParseServicePointStatus(s string) (ServicePointStatus, error) {
	switch status := ServicePointStatus(s); status {
	case ServicePointWorking, ServicePointSuspended, ServicePointClosed:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidServicePointStatus, s)
	}
}

// ServicePoint шиномонтажная точка партнера
type ServicePoint struct {
	ID                  int64
	PartnerID           int64
	Name                string
	Address             string
	WorkingHours        WorkingHours
	PostCount           int // количество постов (боксов)
	SlotDurationMinutes int // длительность слота по умолчанию для генерации
	Status              ServicePointStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsWorking точка принимает бронирования
func (sp *ServicePoint) IsWorking() bool {
	return sp.Status == ServicePointWorking
}

// ServicePointUpdate частичное обновление сервисной точки (nil - поле не меняется)
type ServicePointUpdate struct {
	Name                *string
	Address             *string
	WorkingHours        WorkingHours
	PostCount           *int
	SlotDurationMinutes *int
	Status              *ServicePointStatus
}

// IsEmpty returns true if nothing is going to be updated
func (u *ServicePointUpdate) IsEmpty() bool {
	return u.Name == nil && u.Address == nil && u.WorkingHours == nil &&
		u.PostCount == nil && u.SlotDurationMinutes == nil && u.Status == nil
}

// ServicePointsFilter фильтр списка сервисных точек
type ServicePointsFilter struct {
	PartnerID *int64
	Status    *ServicePointStatus
}
