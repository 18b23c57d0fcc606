package domain

import "errors"

var (
	ErrInvalidBookingStatus      = errors.New("domain: invalid booking status")
	ErrInvalidScheduleStatus     = errors.New("domain: invalid schedule status")
	ErrInvalidServicePointStatus = errors.New("domain: invalid service point status")
	ErrInvalidWorkingHours       = errors.New("domain: invalid working hours")
	ErrUnknownWeekday            = errors.New("domain: unknown weekday key")
	ErrInvalidRole               = errors.New("domain: invalid role")
)
