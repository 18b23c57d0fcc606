package domain

import "time"

// Partner компания-владелец сервисных точек
type Partner struct {
	ID           int64
	Name         string
	ContactPhone string
	ContactEmail *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
