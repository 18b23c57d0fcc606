package domain

import "fmt"

// Role роль вызывающего
type Role string

const (
	RoleAdmin   Role = "admin"
	RolePartner Role = "partner"
	RoleClient  Role = "client"
)

// ParseRole проверяет строку и возвращает роль
func ParseRole(s string) (Role, error) {
	switch role := Role(s); role {
	case RoleAdmin, RolePartner, RoleClient:
		return role, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// Actor кто выполняет операцию
type Actor struct {
	UserID    int64
	Role      Role
	PartnerID *int64 // для роли partner
}

// IsAdmin returns true for administrators
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// OwnsPartner возвращает true, если actor - представитель партнера partnerID
func (a Actor) OwnsPartner(partnerID int64) bool {
	return a.Role == RolePartner && a.PartnerID != nil && *a.PartnerID == partnerID
}

// CanManage администратор или партнер-владелец сервисной точки
func (a Actor) CanManage(sp *ServicePoint) bool {
	return a.IsAdmin() || a.OwnsPartner(sp.PartnerID)
}
