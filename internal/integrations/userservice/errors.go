package userservice

import "errors"

var (
	ErrCarNotFound     = errors.New("userservice: selected car not found")
	ErrUnavailable     = errors.New("userservice: unavailable")
	ErrInvalidResponse = errors.New("userservice: invalid response")

	// ErrServiceDegraded данные автомобиля не получены, бронирование идет без них
	ErrServiceDegraded = errors.New("userservice: degraded")
)
